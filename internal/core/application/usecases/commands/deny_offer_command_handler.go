package commands

import (
	"context"
)

// DenyOfferCommandHandler feeds a candidate's refusal into the pending
// offer registry so the cascade advances immediately.
type DenyOfferCommandHandler struct {
	resolver OfferResolver
}

// NewDenyOfferCommandHandler creates a handler for offer refusals.
func NewDenyOfferCommandHandler(resolver OfferResolver) DenyOfferCommandHandler {
	return DenyOfferCommandHandler{
		resolver: resolver,
	}
}

// Handle processes the refusal. A refusal for an offer that already
// resolved returns ErrNoPendingOffer and changes nothing.
func (h *DenyOfferCommandHandler) Handle(_ context.Context, cmd DenyOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !h.resolver.Deny(cmd.TaskID(), cmd.CandidateID()) {
		return ErrNoPendingOffer
	}
	return nil
}
