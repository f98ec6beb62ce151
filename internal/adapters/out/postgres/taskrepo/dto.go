// Package taskrepo provides data transfer objects and mapping functions
// for task persistence. Implements the repository pattern for the task
// aggregate, including the conditional writes that arbitrate concurrent
// claims at the storage level.
package taskrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO represents the database structure for persisting task aggregates.
// The status column is indexed for the sweep's backlog scan; assignee_id
// is the column the conditional claim predicates on.
type TaskDTO struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	AssigneeID *uuid.UUID  `gorm:"type:uuid;index"`
	Origin     GeoPointDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Kind       int
	Status     int `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for task entities.
// Overrides GORM's default naming convention to use "tasks".
func (TaskDTO) TableName() string {
	return "tasks"
}

// GeoPointDTO represents the embedded origin coordinates within the task table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// fromDomain converts a task domain aggregate to its database representation.
func fromDomain(aggregate *task.Task) TaskDTO {
	var assigneeID *uuid.UUID
	if id := aggregate.Assignee(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	return TaskDTO{
		ID:         aggregate.ID().Bytes(),
		AssigneeID: assigneeID,
		Origin: GeoPointDTO{
			Latitude:  aggregate.Origin().Latitude(),
			Longitude: aggregate.Origin().Longitude(),
		},
		Kind:      int(aggregate.Kind()),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a task domain aggregate.
// Reconstructs the complete aggregate including status and assignee using RestoreTask.
func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		aID, assigneeErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}

		assigneeID = &aID
	}

	origin, err := kernel.NewGeoPoint(dto.Origin.Latitude, dto.Origin.Longitude)
	if err != nil {
		return nil, err
	}

	return task.RestoreTask(id, task.Kind(dto.Kind), origin, task.Status(dto.Status), assigneeID, dto.CreatedAt, dto.UpdatedAt)
}
