package commands

import (
	"context"
)

// AcceptOfferCommandHandler feeds a candidate's acceptance into the
// pending offer registry. The waiting cascade performs the actual claim;
// this handler only reports whether the acceptance reached a live offer.
type AcceptOfferCommandHandler struct {
	resolver OfferResolver
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptances.
func NewAcceptOfferCommandHandler(resolver OfferResolver) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		resolver: resolver,
	}
}

// Handle processes the acceptance. Returns ErrNoPendingOffer when the
// offer already resolved; a late acceptance never claims anything.
func (h *AcceptOfferCommandHandler) Handle(_ context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !h.resolver.Accept(cmd.TaskID(), cmd.CandidateID()) {
		return ErrNoPendingOffer
	}
	return nil
}
