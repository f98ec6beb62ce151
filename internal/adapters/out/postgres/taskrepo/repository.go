package taskrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task to the database.
func (r *GormTaskRepository) Add(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing task to the database.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a task by ID.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInCreatedStatus retrieves all tasks still awaiting an assignee,
// oldest first.
func (r *GormTaskRepository) GetAllInCreatedStatus(ctx context.Context) ([]*task.Task, error) {
	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "status = ?", int(task.Created)).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// ConditionalAssign claims the task for the candidate with a single
// conditional update. The predicate requires the task to be unclaimed
// and still in Created status, so of any number of concurrent claimers
// exactly one sees a row change; the rest get a terminal error telling
// them why the row no longer matched.
func (r *GormTaskRepository) ConditionalAssign(ctx context.Context, taskID kernel.UUID, candidateID kernel.UUID) (*task.Task, error) {
	if err := taskID.Validate(); err != nil {
		return nil, err
	}
	if err := candidateID.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ? AND assignee_id IS NULL AND status = ?", taskID.Bytes(), int(task.Created)).
		Updates(map[string]any{
			"assignee_id": candidateID.Bytes(),
			"status":      int(task.Assigned),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.explainFailedConditional(ctx, taskID)
	}

	claimed, err := r.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(claimed.ID(), claimed)
	return claimed, nil
}

// ConditionalCancel moves the task to Cancelled with a single conditional
// update, only while it is still in Created status.
func (r *GormTaskRepository) ConditionalCancel(ctx context.Context, taskID kernel.UUID) (*task.Task, error) {
	if err := taskID.Validate(); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ? AND status = ?", taskID.Bytes(), int(task.Created)).
		Updates(map[string]any{
			"status":     int(task.Cancelled),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, r.explainFailedConditional(ctx, taskID)
	}

	cancelled, err := r.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(cancelled.ID(), cancelled)
	return cancelled, nil
}

// explainFailedConditional re-reads the row to turn a zero-row
// conditional update into a specific error: missing row, claimed by
// someone, or already in another terminal status.
func (r *GormTaskRepository) explainFailedConditional(ctx context.Context, taskID kernel.UUID) error {
	current, err := r.Get(ctx, taskID)
	if err != nil {
		return err
	}

	if current.Status() == task.Assigned {
		return ports.ErrTaskAlreadyClaimed
	}
	return ports.ErrTaskAlreadyFinalized
}
