package services

import (
	"sort"

	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrRadiusIsRequired is returned when ranking is requested with a
// non-positive search radius.
var ErrRadiusIsRequired = errs.NewValueIsRequiredError("radiusMeters")

// RankedCandidate pairs an eligible candidate with its distance from the
// task's origin point.
type RankedCandidate struct {
	Candidate      *candidate.Candidate
	DistanceMeters float64
}

// CandidateRanker is a domain service producing the ordered candidate
// sequence a dispatch cascade walks through.
//
// Ranking rules:
//   - Only candidates with availability = true participate
//   - Candidates outside the search radius are excluded
//   - Nearest first; ties broken by candidate identity order so the
//     sequence is deterministic and reproducible in tests
//
// An empty result is not an error: the caller treats it as the immediate
// "exhausted" terminal case without attempting any offer.
type CandidateRanker struct{}

// NewCandidateRanker creates a new CandidateRanker instance.
func NewCandidateRanker() CandidateRanker {
	return CandidateRanker{}
}

// Rank filters the provided candidates down to the available ones within
// radiusMeters of origin and returns them ordered nearest first.
//
// Every candidate in the slice must be properly constructed; a nil or
// zero-value entry fails the whole ranking, mirroring how aggregate
// validation errors are treated elsewhere in the domain.
func (r CandidateRanker) Rank(
	origin kernel.GeoPoint,
	radiusMeters float64,
	candidates []*candidate.Candidate,
) ([]RankedCandidate, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	if radiusMeters <= 0 {
		return nil, ErrRadiusIsRequired
	}

	ranked := make([]RankedCandidate, 0, len(candidates))

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsAvailable() {
			continue
		}

		distance, err := c.Location().DistanceMeters(origin)
		if err != nil {
			return nil, err
		}

		if distance > radiusMeters {
			continue
		}

		ranked = append(ranked, RankedCandidate{Candidate: c, DistanceMeters: distance})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceMeters != ranked[j].DistanceMeters {
			return ranked[i].DistanceMeters < ranked[j].DistanceMeters
		}
		return ranked[i].Candidate.ID().String() < ranked[j].Candidate.ID().String()
	})

	return ranked, nil
}
