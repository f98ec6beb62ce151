package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/guard"
)

var ErrGetUnassignedTasksQueryIsNotConstructed = errors.New(
	"GetUnassignedTasksQuery must be created via NewGetUnassignedTasksQuery constructor",
)

// GetUnassignedTasksQuery retrieves every task still awaiting an assignee.
// Used by the dispatch sweep and for operational visibility into the
// unclaimed backlog.
type GetUnassignedTasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedTasksQuery creates a query for the unclaimed backlog.
// This is a parameterless query that fetches all tasks in Created status.
func NewGetUnassignedTasksQuery() GetUnassignedTasksQuery {
	return GetUnassignedTasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnassignedTasksQueryIsNotConstructed if validation fails.
func (q GetUnassignedTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedTasksQueryIsNotConstructed)
}

// GetUnassignedTasksQueryResponse represents one unclaimed task.
type GetUnassignedTasksQueryResponse struct {
	ID        kernel.UUID
	Kind      task.Kind
	Origin    kernel.GeoPoint
	CreatedAt time.Time
}
