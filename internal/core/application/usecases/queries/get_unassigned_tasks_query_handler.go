package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignedTasksQueryHandler retrieves the unclaimed backlog from the
// database, oldest first, so the sweep re-dispatches in placement order.
type GetUnassignedTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedTasksQueryHandler creates a handler for backlog queries.
// Requires a GORM database connection for query execution.
func NewGetUnassignedTasksQueryHandler(db *gorm.DB) GetUnassignedTasksQueryHandler {
	return GetUnassignedTasksQueryHandler{db: db}
}

// Handle executes the query to retrieve all tasks in Created status.
func (h GetUnassignedTasksQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedTasksQuery,
) ([]GetUnassignedTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]GetUnassignedTasksQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			kind,
			origin_latitude,
			origin_longitude,
			created_at
		FROM tasks
		WHERE status = ?
		ORDER BY created_at, id
	`, int(task.Created)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var taskResp GetUnassignedTasksQueryResponse
		var id uuid.UUID
		var kind int
		var latitude, longitude float64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&kind,
			&latitude,
			&longitude,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		taskResp.ID = taskID

		origin, originErr := kernel.NewGeoPoint(latitude, longitude)
		if originErr != nil {
			return nil, originErr
		}
		taskResp.Origin = origin

		taskResp.Kind = task.Kind(kind)
		taskResp.CreatedAt = createdAt
		tasks = append(tasks, taskResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
