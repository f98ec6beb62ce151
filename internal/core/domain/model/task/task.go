package task

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

var (
	// ErrTaskIsNotConstructed is returned when a Task instance was not created
	// through the NewTask or RestoreTask factory methods.
	ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")
)

// Task represents a unit of work needing exactly one actor assignment: an
// order looking for a fulfilling party, or an accepted order looking for a
// carrier. It is the aggregate root whose conditional state transition from
// unclaimed to claimed is the correctness boundary of the dispatch protocol.
//
// Task follows these invariants:
//   - Must have a valid unique identifier, kind and origin point
//   - At most one non-nil assignee reference; once set it is immutable
//   - Status transitions follow the Created -> {Assigned|Exhausted|Cancelled} machine
//   - Can only be created through NewTask / RestoreTask
type Task struct {
	// id is the unique identifier for the task
	id kernel.UUID

	// kind selects which candidate pool the task is dispatched against
	kind Kind

	// assigneeID is the claiming candidate's ID (nil while unclaimed)
	assigneeID *kernel.UUID

	// origin is the point candidate proximity is ranked against
	origin kernel.GeoPoint

	// status represents the current state in the task lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the task was created via a factory method
	isConstructed bool
}

// NewTask creates a new unclaimed Task with validation. This is the only way
// to create a valid Task, ensuring all invariants hold from the start.
//
// Example:
//
//	taskID := kernel.NewUUID()
//	origin, _ := kernel.NewGeoPoint(12.9716, 77.5946)
//	t, err := NewTask(taskID, FulfillmentAssignment, origin)
//	if err != nil {
//	    // Handle validation error
//	}
func NewTask(id kernel.UUID, kind Kind, origin kernel.GeoPoint) (*Task, error) {
	now := time.Now().UTC()
	t := &Task{
		status:        Created,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setKind(kind),
		t.setOrigin(origin),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTask reconstructs a Task from persistence without applying lifecycle
// transitions. It validates the consistency between status and assignee so
// corrupt rows cannot produce an aggregate violating invariants.
func RestoreTask(
	id kernel.UUID,
	kind Kind,
	origin kernel.GeoPoint,
	status Status,
	assigneeID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) (*Task, error) {
	t := &Task{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setKind(kind),
		t.setOrigin(origin),
		status.Validate(),
		status.ValidateCanHaveAssignee(assigneeID != nil),
	); err != nil {
		return nil, err
	}

	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return nil, err
		}
		idCopy := *assigneeID
		t.assigneeID = &idCopy
	}

	t.status = status
	return t, nil
}

// Validate ensures the Task instance was properly constructed through a factory.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}

	return nil
}

// IsEqual compares two tasks by their unique identifiers.
func (t *Task) IsEqual(other *Task) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID {
	return t.id
}

// Kind returns the assignment kind of the task.
func (t *Task) Kind() Kind {
	return t.kind
}

// Origin returns the point candidate proximity is ranked against.
func (t *Task) Origin() kernel.GeoPoint {
	return t.origin
}

// Status returns the current status of the task.
func (t *Task) Status() Status {
	return t.status
}

// Assignee returns the claiming candidate's ID, or nil while unclaimed.
func (t *Task) Assignee() *kernel.UUID {
	return t.assigneeID
}

// CreatedAt returns the task creation timestamp.
func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns the timestamp of the last lifecycle transition.
func (t *Task) UpdatedAt() time.Time {
	return t.updatedAt
}

// Assign commits the task to a candidate and transitions the status to
// Assigned. Only unclaimed tasks can be assigned; the assignee reference is
// immutable afterwards. Note that the durable arbitration between concurrent
// claims happens in the repository's conditional update — this method
// enforces the same rule on the in-memory aggregate.
func (t *Task) Assign(candidateID kernel.UUID) error {
	if err := candidateID.Validate(); err != nil {
		return err
	}

	newStatus, err := t.status.Assign()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.assigneeID = &candidateID
	t.updatedAt = time.Now().UTC()
	return nil
}

// Exhaust marks the task's dispatch as terminally unserved: every ranked
// candidate denied or timed out.
func (t *Task) Exhaust() error {
	newStatus, err := t.status.Exhaust()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.updatedAt = time.Now().UTC()
	return nil
}

// Cancel marks the task cancelled. Valid only while unclaimed.
func (t *Task) Cancel() error {
	newStatus, err := t.status.Cancel()
	if err != nil {
		return err
	}

	t.status = newStatus
	t.updatedAt = time.Now().UTC()
	return nil
}

// setID validates and sets the task's unique identifier.
// This is a private method used only during construction.
func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

// setKind validates and sets the task's assignment kind.
// This is a private method used only during construction.
func (t *Task) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	t.kind = kind
	return nil
}

// setOrigin validates and sets the task's origin point.
// This is a private method used only during construction.
func (t *Task) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	t.origin = origin
	return nil
}
