package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAcceptOfferCommandIsNotConstructed = errors.New(
		"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
	)

	// ErrNoPendingOffer indicates the referenced offer is no longer
	// outstanding: the window expired, the cascade moved on, or the
	// dispatch already finished.
	ErrNoPendingOffer = errors.New("no pending offer for this task and candidate")
)

// AcceptOfferCommand represents a candidate's acceptance of an offer it
// received for a task.
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	taskID      kernel.UUID
	candidateID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command carrying a candidate's acceptance.
func NewAcceptOfferCommand(taskID kernel.UUID, candidateID kernel.UUID) (AcceptOfferCommand, error) {
	acceptCommand := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setTaskID(taskID),
		acceptCommand.setCandidateID(candidateID),
	); err != nil {
		return AcceptOfferCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOfferCommandIsNotConstructed if validation fails.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// TaskID returns the task the acceptance refers to.
func (c AcceptOfferCommand) TaskID() kernel.UUID {
	return c.taskID
}

// CandidateID returns the accepting candidate.
func (c AcceptOfferCommand) CandidateID() kernel.UUID {
	return c.candidateID
}

func (c *AcceptOfferCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *AcceptOfferCommand) setCandidateID(candidateID kernel.UUID) error {
	if err := candidateID.Validate(); err != nil {
		return err
	}

	c.candidateID = candidateID
	return nil
}
