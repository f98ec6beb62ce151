// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. DispatchSweepJob - Periodically re-launches the offer cascade for
// tasks that are still unassigned and have no cascade running. The
// cascade's pending offers live only in process memory, so a restart
// strands every task that was mid-cascade; the sweep picks those tasks
// back up.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepSchedule, getUnassignedTasksHandler, startDispatchHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweep ignores the expected overlap error when a cascade is already
// running for a task; everything else is logged as a system issue.
package jobs
