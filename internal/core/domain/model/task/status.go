package task

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a task.
// It implements a state machine with defined transitions to ensure
// tasks follow the correct dispatch workflow.
//
// State transitions:
//
//	Created ──┬──> Assigned
//	          ├──> Exhausted
//	          └──> Cancelled
//
// Assigned, Exhausted and Cancelled are terminal: once reached, no
// further offers are issued and the assignee reference never changes.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when a task is first placed.
	// Tasks in this status are unclaimed and dispatchable; a process
	// restart mid-offer leaves the task here, safe to re-dispatch.
	Created

	// Assigned indicates exactly one candidate has claimed the task.
	// Terminal; the assignee reference is immutable from this point.
	Assigned

	// Exhausted indicates the ranked candidate sequence was fully
	// visited without an acceptance. Terminal.
	Exhausted

	// Cancelled indicates the task was externally cancelled before a
	// claim succeeded. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Assigned:  "Assigned",
		Exhausted: "Exhausted",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Assigned:  "Assigned",
		Exhausted: "Exhausted",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Assigned || s == Exhausted || s == Cancelled
}

// ValidateAssign checks if the status allows claiming without performing
// the transition. Only unclaimed (Created) tasks may be claimed; the
// assignee reference is immutable once set.
func (s Status) ValidateAssign() error {
	if s != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveAssignee validates the consistency between task status and
// assignee reference. Only Assigned tasks carry an assignee; unclaimed and
// the failure-terminal statuses must not.
func (s Status) ValidateCanHaveAssignee(assignee bool) error {
	if assignee && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an assignee", s.String()),
		)
	}

	if !assignee && s == Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no assignee", s.String()),
		)
	}

	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Created -> Assigned (single claim, first acceptor wins)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// Exhaust transitions the status to Exhausted.
// Only unclaimed tasks can be exhausted.
func (s Status) Exhaust() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to exhaust", s.String()),
		)
	}

	return Exhausted, nil
}

// Cancel transitions the status to Cancelled.
// Cancellation is only valid while the task is unclaimed; a committed
// assignment cannot be cancelled through the dispatch protocol.
func (s Status) Cancel() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
