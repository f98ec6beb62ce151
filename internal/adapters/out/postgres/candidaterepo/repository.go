package candidaterepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCandidateRepository implements CandidateRepository using GORM.
type GormCandidateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCandidateRepository creates a new GORM candidate repository.
func NewGormCandidateRepository(db *gorm.DB, tracker aggregateTracker) *GormCandidateRepository {
	return &GormCandidateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new candidate to the database.
func (r *GormCandidateRepository) Add(ctx context.Context, aggregate *candidate.Candidate) error {
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

// Update saves an existing candidate to the database. All columns are
// written so flipping availability off is persisted despite being the
// zero value.
func (r *GormCandidateRepository) Update(ctx context.Context, aggregate *candidate.Candidate) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CandidateDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a candidate by ID.
func (r *GormCandidateRepository) Get(ctx context.Context, id kernel.UUID) (*candidate.Candidate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CandidateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("candidate", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailableByKind retrieves every available candidate serving the
// given task kind.
func (r *GormCandidateRepository) GetAllAvailableByKind(ctx context.Context, kind task.Kind) ([]*candidate.Candidate, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var dtos []CandidateDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "kind = ? AND is_available = ?", int(kind), true).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]*candidate.Candidate, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}
