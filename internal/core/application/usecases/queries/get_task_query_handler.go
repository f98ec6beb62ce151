package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTaskQueryHandler reads a task's current state from the database.
//
// Example:
//
//	handler := NewGetTaskQueryHandler(db)
//	query, _ := NewGetTaskQuery(taskID)
//
//	state, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("task %s is %s\n", state.ID, state.Status)
type GetTaskQueryHandler struct {
	db *gorm.DB
}

// NewGetTaskQueryHandler creates a handler for single-task state queries.
// Requires a GORM database connection for query execution.
func NewGetTaskQueryHandler(db *gorm.DB) GetTaskQueryHandler {
	return GetTaskQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no
// task with the given identifier exists.
func (h GetTaskQueryHandler) Handle(
	ctx context.Context,
	query GetTaskQuery,
) (GetTaskQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTaskQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			status,
			assignee_id,
			origin_latitude,
			origin_longitude
		FROM tasks
		WHERE id = ?
	`, query.TaskID().Bytes()).Row()

	var (
		id                  uuid.UUID
		kind, status        int
		assigneeID          uuid.NullUUID
		latitude, longitude float64
	)
	if err := row.Scan(&id, &kind, &status, &assigneeID, &latitude, &longitude); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetTaskQueryResponse{}, errs.NewObjectNotFoundError("task", query.TaskID().String())
		}
		return GetTaskQueryResponse{}, err
	}

	taskID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTaskQueryResponse{}, err
	}

	origin, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return GetTaskQueryResponse{}, err
	}

	response := GetTaskQueryResponse{
		ID:     taskID,
		Kind:   task.Kind(kind),
		Status: task.Status(status),
		Origin: origin,
	}

	if assigneeID.Valid {
		assignee, assigneeErr := kernel.UUIDFromBytes(assigneeID.UUID[:])
		if assigneeErr != nil {
			return GetTaskQueryResponse{}, assigneeErr
		}
		response.AssigneeID = &assignee
	}

	return response, nil
}
