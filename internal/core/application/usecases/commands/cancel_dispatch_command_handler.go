package commands

import (
	"context"
)

// CancelDispatchCommandHandler cancels a task's dispatch. The canceller
// moves the stored task to its terminal Cancelled status first and then
// unwinds any outstanding offer, so a racing acceptance can no longer
// claim the task.
type CancelDispatchCommandHandler struct {
	canceller DispatchCanceller
}

// NewCancelDispatchCommandHandler creates a handler for dispatch cancellation.
func NewCancelDispatchCommandHandler(canceller DispatchCanceller) CancelDispatchCommandHandler {
	return CancelDispatchCommandHandler{
		canceller: canceller,
	}
}

// Handle processes the cancellation. Cancelling a task that already
// reached a terminal status surfaces the storage error unchanged.
func (h *CancelDispatchCommandHandler) Handle(ctx context.Context, cmd CancelDispatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.canceller.Cancel(ctx, cmd.TaskID())
}
