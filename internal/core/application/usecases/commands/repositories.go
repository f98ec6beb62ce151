// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TaskRepoFactory provides access to task repository within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// CandidateRepoFactory provides access to candidate repository within a transaction.
	CandidateRepoFactory interface {
		CandidateRepository() ports.CandidateRepository
	}

	// TaskUoW manages transactions for task-only operations.
	// Used when commands only modify task aggregates.
	TaskUoW interface {
		TxManager
		TaskRepoFactory
	}

	// TaskUoWFactory creates new task unit of work instances.
	TaskUoWFactory interface {
		Create() TaskUoW
	}

	// CandidateUoW manages transactions for candidate-only operations.
	// Used when commands only modify candidate aggregates.
	CandidateUoW interface {
		TxManager
		CandidateRepoFactory
	}

	// CandidateUoWFactory creates new candidate unit of work instances.
	CandidateUoWFactory interface {
		Create() CandidateUoW
	}
)
