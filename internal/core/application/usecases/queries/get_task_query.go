// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structures, bypassing the
// domain aggregates.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/guard"
)

var ErrGetTaskQueryIsNotConstructed = errors.New(
	"GetTaskQuery must be created via NewGetTaskQuery constructor",
)

// GetTaskQuery retrieves a single task with its current status and
// assignee. Serves as the polling fallback for parties that cannot hold
// the notification stream open.
type GetTaskQuery struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTaskQuery creates a query for one task's current state.
func NewGetTaskQuery(taskID kernel.UUID) (GetTaskQuery, error) {
	taskQuery := GetTaskQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := taskQuery.setTaskID(taskID); err != nil {
		return GetTaskQuery{}, err
	}

	return taskQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTaskQueryIsNotConstructed if validation fails.
func (q GetTaskQuery) Validate() error {
	return q.guard.Validate(ErrGetTaskQueryIsNotConstructed)
}

// TaskID returns the identifier of the task to fetch.
func (q GetTaskQuery) TaskID() kernel.UUID {
	return q.taskID
}

func (q *GetTaskQuery) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	q.taskID = taskID
	return nil
}

// GetTaskQueryResponse represents a task's externally visible state.
type GetTaskQueryResponse struct {
	ID         kernel.UUID
	Kind       task.Kind
	Status     task.Status
	AssigneeID *kernel.UUID
	Origin     kernel.GeoPoint
}
