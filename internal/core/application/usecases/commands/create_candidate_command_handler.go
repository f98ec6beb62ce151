package commands

import (
	"context"

	"dispatch/internal/core/domain/model/candidate"
)

// CreateCandidateCommandHandler handles the business logic for candidate
// registration. New candidates join the pool available.
type CreateCandidateCommandHandler struct {
	uowFactory CandidateUoWFactory
}

// NewCreateCandidateCommandHandler creates a handler for candidate registration.
// Requires a CandidateUoWFactory for transactional persistence.
func NewCreateCandidateCommandHandler(uowFactory CandidateUoWFactory) CreateCandidateCommandHandler {
	return CreateCandidateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the candidate registration command.
func (h *CreateCandidateCommandHandler) Handle(ctx context.Context, cmd CreateCandidateCommand) error {
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

	newCandidate, err := candidate.NewCandidate(cmd.CandidateID(), cmd.Name(), cmd.Kind(), cmd.Location())
	if err != nil {
		return err
	}

	if err = uow.CandidateRepository().Add(ctx, newCandidate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
