package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseCandidateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	busyCandidate, err := candidate.RestoreCandidate(
		kernel.NewUUID(), "Quick Wheels", task.CarriageAssignment, validOrigin(t), false)
	require.NoError(t, err)

	cmd, err := commands.NewReleaseCandidateCommand(busyCandidate.ID())
	require.NoError(t, err)

	candidateRepo := new(MockCmdCandidateRepository)
	uow := new(MockCandidateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CandidateRepository").Return(candidateRepo).Once(),
		candidateRepo.On("Get", ctx, busyCandidate.ID()).Return(busyCandidate, nil).Once(),
		candidateRepo.On("Update", ctx, mock.AnythingOfType("*candidate.Candidate")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCandidateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleaseCandidateCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, busyCandidate.IsAvailable())
	candidateRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReleaseCandidateCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	candidateID := kernel.NewUUID()

	cmd, err := commands.NewReleaseCandidateCommand(candidateID)
	require.NoError(t, err)

	candidateRepo := new(MockCmdCandidateRepository)
	uow := new(MockCandidateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CandidateRepository").Return(candidateRepo).Once(),
		candidateRepo.On("Get", ctx, candidateID).Return(nil, errs.NewObjectNotFoundError("candidateID", candidateID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCandidateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReleaseCandidateCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReleaseCandidateCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.ReleaseCandidateCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrReleaseCandidateCommandIsNotConstructed)
}
