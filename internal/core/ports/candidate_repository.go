package ports

import (
	"context"

	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
)

// CandidateRepository defines the persistence contract for candidate aggregates.
// Provides methods for storing, retrieving, and querying candidates by the
// task kind they serve and their availability.
type CandidateRepository interface {
	// Add persists a new candidate aggregate to storage.
	// The candidate must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *candidate.Candidate) error

	// Update persists changes to an existing candidate aggregate.
	// The candidate must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *candidate.Candidate) error

	// Get retrieves a candidate aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*candidate.Candidate, error)

	// GetAllAvailableByKind retrieves every available candidate serving the
	// given task kind. Used to build the candidate pool before ranking.
	GetAllAvailableByKind(ctx context.Context, kind task.Kind) ([]*candidate.Candidate, error)
}
