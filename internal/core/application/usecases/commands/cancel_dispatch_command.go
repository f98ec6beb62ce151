package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelDispatchCommandIsNotConstructed = errors.New(
	"CancelDispatchCommand must be created via NewCancelDispatchCommand constructor",
)

// CancelDispatchCommand represents a request to cancel a task's dispatch
// before any candidate claims it.
type CancelDispatchCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelDispatchCommand creates a command to cancel a task's dispatch.
func NewCancelDispatchCommand(taskID kernel.UUID) (CancelDispatchCommand, error) {
	cancelCommand := CancelDispatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cancelCommand.setTaskID(taskID); err != nil {
		return CancelDispatchCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelDispatchCommandIsNotConstructed if validation fails.
func (c CancelDispatchCommand) Validate() error {
	return c.guard.Validate(ErrCancelDispatchCommandIsNotConstructed)
}

// TaskID returns the task whose dispatch should be cancelled.
func (c CancelDispatchCommand) TaskID() kernel.UUID {
	return c.taskID
}

func (c *CancelDispatchCommand) setTaskID(taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	c.taskID = taskID
	return nil
}
