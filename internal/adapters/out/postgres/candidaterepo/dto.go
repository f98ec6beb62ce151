// Package candidaterepo provides data transfer objects and mapping
// functions for candidate persistence.
package candidaterepo

import (
	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// CandidateDTO represents the database structure for persisting candidate
// aggregates. Kind and availability are indexed together because the pool
// query always filters on both.
type CandidateDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"type:text"`
	Location    GeoPointDTO `gorm:"embedded;embeddedPrefix:location_"`
	Kind        int         `gorm:"index:idx_candidates_pool"`
	IsAvailable bool        `gorm:"index:idx_candidates_pool"`
}

// TableName specifies the database table name for candidate entities.
// Overrides GORM's default naming convention to use "candidates".
func (CandidateDTO) TableName() string {
	return "candidates"
}

// GeoPointDTO represents the embedded position coordinates within the candidate table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// fromDomain converts a candidate domain aggregate to its database representation.
func fromDomain(aggregate *candidate.Candidate) CandidateDTO {
	return CandidateDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
		Location: GeoPointDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		Kind:        int(aggregate.Kind()),
		IsAvailable: aggregate.IsAvailable(),
	}
}

// toDomain converts a database DTO to a candidate domain aggregate using
// RestoreCandidate.
func toDomain(dto CandidateDTO) (*candidate.Candidate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return candidate.RestoreCandidate(id, dto.Name, task.Kind(dto.Kind), location, dto.IsAvailable)
}
