package commands

import (
	"context"

	"dispatch/internal/core/dispatch"
	"dispatch/internal/core/domain/model/kernel"
)

// Dispatching interfaces decouple command handlers from the concrete
// dispatch controller so handlers stay testable with mocks.
type (
	// Dispatcher runs the offer cascade for a task until it reaches a
	// terminal outcome.
	Dispatcher interface {
		Dispatch(ctx context.Context, taskID kernel.UUID) (dispatch.Result, error)
	}

	// OfferResolver resolves a candidate's answer against the pending
	// offer registry. A false return means no matching offer was
	// outstanding, for example after the window expired.
	OfferResolver interface {
		Accept(taskID kernel.UUID, candidateID kernel.UUID) bool
		Deny(taskID kernel.UUID, candidateID kernel.UUID) bool
	}

	// DispatchCanceller cancels a task's dispatch, unwinding any
	// outstanding offer.
	DispatchCanceller interface {
		Cancel(ctx context.Context, taskID kernel.UUID) error
	}
)
