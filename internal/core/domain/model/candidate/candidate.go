package candidate

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for candidate operations.
var (
	// ErrNameIsRequired is returned when attempting to create a candidate without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCandidateIsNotConstructed is returned when using an improperly initialized Candidate.
	ErrCandidateIsNotConstructed = errors.New("Candidate must be created via NewCandidate constructor")
)

// Candidate represents an actor eligible to receive offers for one kind of
// task: a fulfilling party for fulfillment assignments, or a carrier for
// carriage assignments.
//
// Business rules:
//   - Candidate must have a valid UUID, non-empty name, valid kind and location
//   - The availability flag is true only while the candidate holds no active
//     assignment; it is flipped to false when an offer is accepted and back to
//     true by an external release event
//   - Identity and location are managed by an external profile collaborator;
//     this aggregate only records the latest reported position
type Candidate struct {
	// id uniquely identifies the candidate
	id kernel.UUID
	// name is the human-readable name of the candidate
	name string
	// kind selects which task kind the candidate can receive offers for
	kind task.Kind
	// location is the last reported position of the candidate
	location kernel.GeoPoint
	// isAvailable is true while the candidate holds no active assignment
	isAvailable bool
	// guard ensures the candidate was properly constructed
	guard guard.ConstructorGuard
}

// NewCandidate creates a new available Candidate with the given identity,
// kind and starting location. Returns joined validation errors if any
// parameter is invalid.
//
// Example:
//
//	location, _ := kernel.NewGeoPoint(12.9716, 77.5946)
//	c, err := NewCandidate(kernel.NewUUID(), "Alice", task.CarriageAssignment, location)
//	if err != nil {
//	    // Handle construction error
//	}
func NewCandidate(id kernel.UUID, name string, kind task.Kind, location kernel.GeoPoint) (*Candidate, error) {
	candidate := &Candidate{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		candidate.setID(id),
		candidate.setName(name),
		candidate.setKind(kind),
		candidate.setLocation(location),
	); err != nil {
		return nil, err
	}

	return candidate, nil
}

// RestoreCandidate reconstructs a Candidate from persistent storage,
// preserving its availability flag.
func RestoreCandidate(
	id kernel.UUID,
	name string,
	kind task.Kind,
	location kernel.GeoPoint,
	isAvailable bool,
) (*Candidate, error) {
	candidate, err := NewCandidate(id, name, kind, location)
	if err != nil {
		return nil, err
	}

	candidate.isAvailable = isAvailable
	return candidate, nil
}

// Validate ensures the Candidate was properly constructed through a factory.
func (c *Candidate) Validate() error {
	if c == nil {
		return ErrCandidateIsNotConstructed
	}

	return c.guard.Validate(ErrCandidateIsNotConstructed)
}

// IsEqual compares two candidates by their unique identifiers.
func (c *Candidate) IsEqual(other *Candidate) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the candidate's unique identifier.
func (c *Candidate) ID() kernel.UUID {
	return c.id
}

// Name returns the candidate's human-readable name.
func (c *Candidate) Name() string {
	return c.name
}

// Kind returns the task kind the candidate serves.
func (c *Candidate) Kind() task.Kind {
	return c.kind
}

// Location returns the candidate's last reported position.
func (c *Candidate) Location() kernel.GeoPoint {
	return c.location
}

// IsAvailable reports whether the candidate may receive offers.
func (c *Candidate) IsAvailable() bool {
	return c.isAvailable
}

// MarkBusy flips the availability flag off. Called when the candidate's
// acceptance of an offer is committed.
func (c *Candidate) MarkBusy() error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.isAvailable = false
	return nil
}

// Release flips the availability flag back on. Driven by the external
// release event when the candidate finishes or the assignment is reverted.
func (c *Candidate) Release() error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.isAvailable = true
	return nil
}

// MoveTo updates the candidate's last reported position.
func (c *Candidate) MoveTo(location kernel.GeoPoint) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return c.setLocation(location)
}

// setID validates and sets the candidate's unique identifier.
// This is a private method used only during construction.
func (c *Candidate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setName validates and sets the candidate's name.
// This is a private method used only during construction.
func (c *Candidate) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

// setKind validates and sets the candidate's task kind.
// This is a private method used only during construction.
func (c *Candidate) setKind(kind task.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

// setLocation validates and sets the candidate's position.
func (c *Candidate) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
