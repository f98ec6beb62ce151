package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/dispatch"

	"github.com/robfig/cron/v3"
)

// DispatchSweepJob re-launches the offer cascade for unassigned tasks.
// Pending offers live only in process memory, so tasks that were
// mid-cascade when the process died stay in the created state with no
// cascade running; the sweep finds them and starts a fresh run.
type DispatchSweepJob struct {
	schedule       string
	queryHandler   queries.GetUnassignedTasksQueryHandler
	commandHandler commands.StartDispatchCommandHandler
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewDispatchSweepJob creates a sweep job on the given cron schedule
// (standard five-field cron expression).
func NewDispatchSweepJob(
	schedule string,
	queryHandler queries.GetUnassignedTasksQueryHandler,
	commandHandler commands.StartDispatchCommandHandler,
	logger *slog.Logger,
) *DispatchSweepJob {
	return &DispatchSweepJob{
		schedule:       schedule,
		queryHandler:   queryHandler,
		commandHandler: commandHandler,
		cron:           cron.New(),
		logger:         logger.With("component", "dispatch_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Dispatch sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Dispatch sweep job stopped")
}

// sweep lists every unassigned task and starts a cascade for each on its
// own goroutine. Dispatch runs block until the task resolves, so they
// must not hold up the cron tick or each other.
func (j *DispatchSweepJob) sweep() {
	ctx := context.Background()

	tasks, err := j.queryHandler.Handle(ctx, queries.NewGetUnassignedTasksQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch sweep failed to list unassigned tasks", "error", err)
		return
	}

	for _, unassigned := range tasks {
		cmd, cmdErr := commands.NewStartDispatchCommand(unassigned.ID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep skipped task",
				"task_id", unassigned.ID,
				"error", cmdErr)
			continue
		}

		go func() {
			if _, dispatchErr := j.commandHandler.Handle(context.Background(), cmd); dispatchErr != nil {
				// A cascade already running for the task is the expected
				// overlap between the sweep and request-triggered runs.
				if !errors.Is(dispatchErr, dispatch.ErrDispatchInProgress) {
					j.logger.Error("Dispatch sweep run failed",
						"task_id", cmd.TaskID(),
						"error", dispatchErr)
				}
			}
		}()
	}
}
