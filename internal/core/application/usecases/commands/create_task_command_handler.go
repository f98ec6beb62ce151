package commands

import (
	"context"

	"dispatch/internal/core/domain/model/task"
)

// CreateTaskCommandHandler handles the business logic for task placement.
// New tasks start in Created status, unclaimed and ready for dispatch.
type CreateTaskCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewCreateTaskCommandHandler creates a handler for task placement operations.
// Requires a TaskUoWFactory for transactional persistence.
func NewCreateTaskCommandHandler(uowFactory TaskUoWFactory) CreateTaskCommandHandler {
	return CreateTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the task creation command.
// Uses a transaction to ensure the task is properly persisted or rolled
// back on error. Starting the offer cascade is a separate step so the
// caller decides whether to dispatch immediately or leave the task to
// the sweep.
func (h *CreateTaskCommandHandler) Handle(ctx context.Context, cmd CreateTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newTask, err := task.NewTask(cmd.TaskID(), cmd.Kind(), cmd.Origin())
	if err != nil {
		return err
	}

	if err = uow.TaskRepository().Add(ctx, newTask); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
