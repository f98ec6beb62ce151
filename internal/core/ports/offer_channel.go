package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
)

// Offer describes a single time-limited proposal sent to one candidate.
// The candidate must respond before Deadline or the offer lapses.
type Offer struct {
	TaskID      kernel.UUID
	CandidateID kernel.UUID
	Kind        task.Kind
	Origin      kernel.GeoPoint
	Deadline    time.Time
}

// OutcomeEvent describes the terminal result of a dispatch run,
// published for external consumers once the run finishes.
type OutcomeEvent struct {
	TaskID      kernel.UUID
	CandidateID *kernel.UUID
	Outcome     string
	OccurredAt  time.Time
}

// OfferHandler consumes offers delivered to a subscribed candidate.
type OfferHandler func(offer Offer)

// OutcomeHandler consumes outcome events for finished dispatch runs.
type OutcomeHandler func(event OutcomeEvent)

// OfferChannel is the messaging contract between the dispatch controller
// and candidate-facing clients. Offers go out on per-candidate topics so
// a candidate only ever sees proposals addressed to it; outcomes go out
// on a shared topic.
type OfferChannel interface {
	// PublishOffer delivers the offer to the candidate's topic.
	PublishOffer(ctx context.Context, offer Offer) error

	// PublishOutcome announces the terminal result of a dispatch run.
	PublishOutcome(ctx context.Context, event OutcomeEvent) error

	// SubscribeOffers registers a handler for offers addressed to the
	// candidate. The returned function unsubscribes and releases the
	// underlying subscription.
	SubscribeOffers(ctx context.Context, candidateID kernel.UUID, handler OfferHandler) (func() error, error)

	// SubscribeOutcomes registers a handler for all outcome events.
	// The returned function unsubscribes and releases the underlying
	// subscription.
	SubscribeOutcomes(ctx context.Context, handler OutcomeHandler) (func() error, error)

	// Close releases the channel and every open subscription.
	Close() error
}
