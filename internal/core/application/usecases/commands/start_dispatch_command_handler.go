package commands

import (
	"context"

	"dispatch/internal/core/dispatch"
)

// StartDispatchCommandHandler runs the offer cascade for a task. The
// handler blocks until the cascade reaches a terminal outcome, which can
// take the full offer window times the number of ranked candidates;
// callers that must not block run it on their own goroutine.
type StartDispatchCommandHandler struct {
	dispatcher Dispatcher
}

// NewStartDispatchCommandHandler creates a handler for dispatch runs.
func NewStartDispatchCommandHandler(dispatcher Dispatcher) StartDispatchCommandHandler {
	return StartDispatchCommandHandler{
		dispatcher: dispatcher,
	}
}

// Handle runs the cascade and returns its terminal result.
func (h *StartDispatchCommandHandler) Handle(ctx context.Context, cmd StartDispatchCommand) (dispatch.Result, error) {
	if err := cmd.Validate(); err != nil {
		return dispatch.Result{}, err
	}

	return h.dispatcher.Dispatch(ctx, cmd.TaskID())
}
