package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReleaseCandidateCommandIsNotConstructed = errors.New(
	"ReleaseCandidateCommand must be created via NewReleaseCandidateCommand constructor",
)

// ReleaseCandidateCommand represents a request to return a candidate to
// the available pool after it finishes its assignment.
type ReleaseCandidateCommand struct { //nolint:recvcheck //using for validation
	candidateID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseCandidateCommand creates a command to release a candidate.
func NewReleaseCandidateCommand(candidateID kernel.UUID) (ReleaseCandidateCommand, error) {
	releaseCommand := ReleaseCandidateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := releaseCommand.setCandidateID(candidateID); err != nil {
		return ReleaseCandidateCommand{}, err
	}

	return releaseCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseCandidateCommandIsNotConstructed if validation fails.
func (c ReleaseCandidateCommand) Validate() error {
	return c.guard.Validate(ErrReleaseCandidateCommandIsNotConstructed)
}

// CandidateID returns the unique identifier of the candidate to release.
func (c ReleaseCandidateCommand) CandidateID() kernel.UUID {
	return c.candidateID
}

func (c *ReleaseCandidateCommand) setCandidateID(candidateID kernel.UUID) error {
	if err := candidateID.Validate(); err != nil {
		return err
	}

	c.candidateID = candidateID
	return nil
}
