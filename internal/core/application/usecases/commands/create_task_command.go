package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/guard"
)

var ErrCreateTaskCommandIsNotConstructed = errors.New(
	"CreateTaskCommand must be created via NewCreateTaskCommand constructor",
)

// CreateTaskCommand represents a request to place a new assignment task.
// Encapsulates the task identity, the kind of actor it needs, and the
// origin point candidates are ranked against.
//
// Example:
//
//	taskID := kernel.NewUUID()
//	origin, _ := kernel.NewGeoPoint(12.9716, 77.5946)
//	cmd, err := NewCreateTaskCommand(taskID, task.FulfillmentAssignment, origin)
//	if err != nil {
//	    return fmt.Errorf("invalid task data: %w", err)
//	}
//
//	handler := NewCreateTaskCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create task: %w", err)
//	}
type CreateTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID
	kind   task.Kind
	origin kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateTaskCommand creates a command to place a new assignment task.
// Validates that the task ID, kind, and origin point are all valid.
func NewCreateTaskCommand(taskID kernel.UUID, kind task.Kind, origin kernel.GeoPoint) (CreateTaskCommand, error) {
	taskCommand := CreateTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		taskCommand.setTaskID(taskID),
		taskCommand.setKind(kind),
		taskCommand.setOrigin(origin),
	); err != nil {
		return CreateTaskCommand{}, err
	}

	return taskCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateTaskCommandIsNotConstructed if validation fails.
func (c CreateTaskCommand) Validate() error {
	return c.guard.Validate(ErrCreateTaskCommandIsNotConstructed)
}

// TaskID returns the unique identifier for the task.
func (c CreateTaskCommand) TaskID() kernel.UUID {
	return c.taskID
}

// Kind returns the kind of actor the task needs.
func (c CreateTaskCommand) Kind() task.Kind {
	return c.kind
}

// Origin returns the point candidates are ranked against.
func (c CreateTaskCommand) Origin() kernel.GeoPoint {
	return c.origin
}

func (c *CreateTaskCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}

func (c *CreateTaskCommand) setKind(kind task.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *CreateTaskCommand) setOrigin(origin kernel.GeoPoint) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	c.origin = origin
	return nil
}
