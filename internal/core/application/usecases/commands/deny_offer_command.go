package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDenyOfferCommandIsNotConstructed = errors.New(
	"DenyOfferCommand must be created via NewDenyOfferCommand constructor",
)

// DenyOfferCommand represents a candidate's explicit refusal of an offer,
// advancing the cascade without waiting out the offer window.
type DenyOfferCommand struct { //nolint:recvcheck //using for validation
	taskID      kernel.UUID
	candidateID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDenyOfferCommand creates a command carrying a candidate's refusal.
func NewDenyOfferCommand(taskID kernel.UUID, candidateID kernel.UUID) (DenyOfferCommand, error) {
	denyCommand := DenyOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		denyCommand.setTaskID(taskID),
		denyCommand.setCandidateID(candidateID),
	); err != nil {
		return DenyOfferCommand{}, err
	}

	return denyCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDenyOfferCommandIsNotConstructed if validation fails.
func (c DenyOfferCommand) Validate() error {
	return c.guard.Validate(ErrDenyOfferCommandIsNotConstructed)
}

// TaskID returns the task the refusal refers to.
func (c DenyOfferCommand) TaskID() kernel.UUID {
	return c.taskID
}

// CandidateID returns the refusing candidate.
func (c DenyOfferCommand) CandidateID() kernel.UUID {
	return c.candidateID
}

func (c *DenyOfferCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *DenyOfferCommand) setCandidateID(candidateID kernel.UUID) error {
	if err := candidateID.Validate(); err != nil {
		return err
	}

	c.candidateID = candidateID
	return nil
}
