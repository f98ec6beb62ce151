package task

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Kind classifies what sort of actor assignment a task requires.
// The same dispatch protocol serves both kinds; the kind only selects
// which candidate pool is queried and which search radius applies.
type Kind int

const (
	// UnknownKind represents an invalid or undefined kind.
	// This value (0) helps catch uninitialized Kind values.
	UnknownKind Kind = iota

	// FulfillmentAssignment is a task looking for a fulfilling party
	// (a vendor preparing the order).
	FulfillmentAssignment

	// CarriageAssignment is a task looking for a carrier
	// (a courier delivering the accepted order).
	CarriageAssignment
)

// getKindStrings returns a map of Kind values to their string representations.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind:           "Unknown",
		FulfillmentAssignment: "FulfillmentAssignment",
		CarriageAssignment:    "CarriageAssignment",
	}
}

// getValidKindStrings returns a map of only valid Kind values.
func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // UnknownKind is intentionally excluded as it's invalid
	return map[Kind]string{
		FulfillmentAssignment: "FulfillmentAssignment",
		CarriageAssignment:    "CarriageAssignment",
	}
}

// Validate checks if the Kind value is valid.
// Valid kinds are FulfillmentAssignment and CarriageAssignment.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// KindFromString parses a kind from its string representation.
// Used when reconstructing tasks from persistence or parsing API input.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid kind", s))
}
