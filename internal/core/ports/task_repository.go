package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
)

// ErrTaskAlreadyClaimed is returned by conditional writes when the task
// was claimed by another candidate between ranking and acceptance.
var ErrTaskAlreadyClaimed = errors.New("task already claimed")

// ErrTaskAlreadyFinalized is returned by conditional writes when the task
// has already reached a terminal status and cannot change anymore.
var ErrTaskAlreadyFinalized = errors.New("task already finalized")

// TaskRepository defines the persistence contract for task aggregates.
// Provides methods for storing, retrieving, and querying task entities,
// plus the conditional writes that arbitrate concurrent claims.
type TaskRepository interface {
	// Add persists a new task aggregate to storage.
	// The task must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *task.Task) error

	// Update persists changes to an existing task aggregate.
	// The task must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *task.Task) error

	// Get retrieves a task aggregate by its unique identifier.
	// Returns the complete task with its current status and assignee.
	Get(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// GetAllInCreatedStatus retrieves every task still awaiting an assignee.
	// Used by the dispatch sweep to pick up tasks that have no active
	// offer sequence, for example after a process restart.
	GetAllInCreatedStatus(ctx context.Context) ([]*task.Task, error)

	// ConditionalAssign assigns the candidate to the task only if the task
	// still has no assignee. The check and the write happen in a single
	// storage-level conditional update, so exactly one of any number of
	// concurrent callers succeeds. Losers receive ErrTaskAlreadyClaimed.
	ConditionalAssign(ctx context.Context, taskID kernel.UUID, candidateID kernel.UUID) (*task.Task, error)

	// ConditionalCancel moves the task to Cancelled only if it has not
	// reached a terminal status yet. Returns ErrTaskAlreadyFinalized when
	// the task was already assigned, exhausted, or cancelled.
	ConditionalCancel(ctx context.Context, taskID kernel.UUID) (*task.Task, error)
}
