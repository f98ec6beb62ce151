package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCandidateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateCandidateCommand(
		kernel.NewUUID(), "Quick Wheels", task.CarriageAssignment, validOrigin(t))
	require.NoError(t, err)

	candidateRepo := new(MockCmdCandidateRepository)
	uow := new(MockCandidateUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CandidateRepository").Return(candidateRepo).Once(),
		candidateRepo.On("Add", ctx, mock.AnythingOfType("*candidate.Candidate")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCandidateUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateCandidateCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	candidateRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	// New candidates join the pool available.
	addedCandidate := candidateRepo.Calls[0].Arguments[1].(*candidate.Candidate)
	require.True(t, addedCandidate.IsAvailable())
	require.Equal(t, task.CarriageAssignment, addedCandidate.Kind())
}

func TestCreateCandidateCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockCandidateUoWFactory)
	handler := commands.NewCreateCandidateCommandHandler(factory)
	err := handler.Handle(ctx, commands.CreateCandidateCommand{})

	require.ErrorIs(t, err, commands.ErrCreateCandidateCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
