package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartDispatchCommandIsNotConstructed = errors.New(
	"StartDispatchCommand must be created via NewStartDispatchCommand constructor",
)

// StartDispatchCommand represents a request to run the offer cascade for
// an unclaimed task.
type StartDispatchCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartDispatchCommand creates a command to start a task's dispatch.
func NewStartDispatchCommand(taskID kernel.UUID) (StartDispatchCommand, error) {
	startCommand := StartDispatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := startCommand.setTaskID(taskID); err != nil {
		return StartDispatchCommand{}, err
	}

	return startCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartDispatchCommandIsNotConstructed if validation fails.
func (c StartDispatchCommand) Validate() error {
	return c.guard.Validate(ErrStartDispatchCommandIsNotConstructed)
}

// TaskID returns the task to dispatch.
func (c StartDispatchCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *StartDispatchCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
