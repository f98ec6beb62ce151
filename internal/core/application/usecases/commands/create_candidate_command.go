package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCandidateCommandIsNotConstructed = errors.New(
		"CreateCandidateCommand must be created via NewCreateCandidateCommand constructor",
	)
	ErrCandidateNameIsRequired = errors.New("candidate name is required")
)

// CreateCandidateCommand represents a request to register a new candidate
// in the assignment pool. Registered candidates start available and
// immediately participate in offer cascades of their kind.
type CreateCandidateCommand struct { //nolint:recvcheck //using for validation
	candidateID kernel.UUID
	name        string
	kind        task.Kind
	location    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateCandidateCommand creates a command to register a new candidate.
// Validates the identity, name, served task kind, and location.
func NewCreateCandidateCommand(
	candidateID kernel.UUID,
	name string,
	kind task.Kind,
	location kernel.GeoPoint,
) (CreateCandidateCommand, error) {
	candidateCommand := CreateCandidateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		candidateCommand.setCandidateID(candidateID),
		candidateCommand.setName(name),
		candidateCommand.setKind(kind),
		candidateCommand.setLocation(location),
	); err != nil {
		return CreateCandidateCommand{}, err
	}

	return candidateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCandidateCommandIsNotConstructed if validation fails.
func (c CreateCandidateCommand) Validate() error {
	return c.guard.Validate(ErrCreateCandidateCommandIsNotConstructed)
}

// CandidateID returns the unique identifier for the candidate.
func (c CreateCandidateCommand) CandidateID() kernel.UUID {
	return c.candidateID
}

// Name returns the candidate's display name.
func (c CreateCandidateCommand) Name() string {
	return c.name
}

// Kind returns the task kind the candidate serves.
func (c CreateCandidateCommand) Kind() task.Kind {
	return c.kind
}

// Location returns the candidate's current position.
func (c CreateCandidateCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *CreateCandidateCommand) setCandidateID(candidateID kernel.UUID) error {
	if err := candidateID.Validate(); err != nil {
		return err
	}

	c.candidateID = candidateID
	return nil
}

func (c *CreateCandidateCommand) setName(name string) error {
	if name == "" {
		return ErrCandidateNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCandidateCommand) setKind(kind task.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *CreateCandidateCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
