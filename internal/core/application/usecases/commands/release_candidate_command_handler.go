package commands

import (
	"context"
)

// ReleaseCandidateCommandHandler returns a busy candidate to the pool.
// Released candidates participate in the next offer cascade of their kind.
type ReleaseCandidateCommandHandler struct {
	uowFactory CandidateUoWFactory
}

// NewReleaseCandidateCommandHandler creates a handler for candidate release.
// Requires a CandidateUoWFactory for transactional persistence.
func NewReleaseCandidateCommandHandler(uowFactory CandidateUoWFactory) ReleaseCandidateCommandHandler {
	return ReleaseCandidateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command. Releasing an already available
// candidate is a no-op at the aggregate level.
func (h *ReleaseCandidateCommandHandler) Handle(ctx context.Context, cmd ReleaseCandidateCommand) error {
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

	candidateRepo := uow.CandidateRepository()
	releasedCandidate, err := candidateRepo.Get(ctx, cmd.CandidateID())
	if err != nil {
		return err
	}

	if err = releasedCandidate.Release(); err != nil {
		return err
	}

	if err = candidateRepo.Update(ctx, releasedCandidate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
