package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOfferResolver struct{ mock.Mock }

func (m *MockOfferResolver) Accept(taskID kernel.UUID, candidateID kernel.UUID) bool {
	args := m.Called(taskID, candidateID)
	return args.Bool(0)
}

func (m *MockOfferResolver) Deny(taskID kernel.UUID, candidateID kernel.UUID) bool {
	args := m.Called(taskID, candidateID)
	return args.Bool(0)
}

type MockDispatchCanceller struct{ mock.Mock }

func (m *MockDispatchCanceller) Cancel(ctx context.Context, taskID kernel.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(ctx context.Context, taskID kernel.UUID) (dispatch.Result, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(dispatch.Result), args.Error(1)
}

func TestAcceptOfferCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()
	candidateID := kernel.NewUUID()

	cmd, err := commands.NewAcceptOfferCommand(taskID, candidateID)
	require.NoError(t, err)

	resolver := new(MockOfferResolver)
	resolver.On("Accept", taskID, candidateID).Return(true).Once()

	handler := commands.NewAcceptOfferCommandHandler(resolver)
	require.NoError(t, handler.Handle(ctx, cmd))
	resolver.AssertExpectations(t)
}

func TestAcceptOfferCommandHandler_Handle_LateAccept(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()
	candidateID := kernel.NewUUID()

	cmd, err := commands.NewAcceptOfferCommand(taskID, candidateID)
	require.NoError(t, err)

	resolver := new(MockOfferResolver)
	resolver.On("Accept", taskID, candidateID).Return(false).Once()

	handler := commands.NewAcceptOfferCommandHandler(resolver)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrNoPendingOffer)
}

func TestAcceptOfferCommandHandler_Handle_ValidationError(t *testing.T) {
	resolver := new(MockOfferResolver)
	handler := commands.NewAcceptOfferCommandHandler(resolver)

	err := handler.Handle(t.Context(), commands.AcceptOfferCommand{})
	require.ErrorIs(t, err, commands.ErrAcceptOfferCommandIsNotConstructed)
	resolver.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestDenyOfferCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()
	candidateID := kernel.NewUUID()

	cmd, err := commands.NewDenyOfferCommand(taskID, candidateID)
	require.NoError(t, err)

	resolver := new(MockOfferResolver)
	resolver.On("Deny", taskID, candidateID).Return(true).Once()

	handler := commands.NewDenyOfferCommandHandler(resolver)
	require.NoError(t, handler.Handle(ctx, cmd))
	resolver.AssertExpectations(t)
}

func TestDenyOfferCommandHandler_Handle_NoPendingOffer(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()
	candidateID := kernel.NewUUID()

	cmd, err := commands.NewDenyOfferCommand(taskID, candidateID)
	require.NoError(t, err)

	resolver := new(MockOfferResolver)
	resolver.On("Deny", taskID, candidateID).Return(false).Once()

	handler := commands.NewDenyOfferCommandHandler(resolver)
	require.ErrorIs(t, handler.Handle(ctx, cmd), commands.ErrNoPendingOffer)
}

func TestCancelDispatchCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()

	cmd, err := commands.NewCancelDispatchCommand(taskID)
	require.NoError(t, err)

	canceller := new(MockDispatchCanceller)
	canceller.On("Cancel", ctx, taskID).Return(nil).Once()

	handler := commands.NewCancelDispatchCommandHandler(canceller)
	require.NoError(t, handler.Handle(ctx, cmd))
	canceller.AssertExpectations(t)
}

func TestCancelDispatchCommandHandler_Handle_AlreadyFinalized(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()

	cmd, err := commands.NewCancelDispatchCommand(taskID)
	require.NoError(t, err)

	canceller := new(MockDispatchCanceller)
	canceller.On("Cancel", ctx, taskID).Return(ports.ErrTaskAlreadyFinalized).Once()

	handler := commands.NewCancelDispatchCommandHandler(canceller)
	require.ErrorIs(t, handler.Handle(ctx, cmd), ports.ErrTaskAlreadyFinalized)
}

func TestStartDispatchCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()
	assigneeID := kernel.NewUUID()

	cmd, err := commands.NewStartDispatchCommand(taskID)
	require.NoError(t, err)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", ctx, taskID).
		Return(dispatch.Result{Outcome: dispatch.OutcomeAssigned, AssigneeID: &assigneeID, OffersMade: 2}, nil).
		Once()

	handler := commands.NewStartDispatchCommandHandler(dispatcher)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, dispatch.OutcomeAssigned, result.Outcome)
	require.NotNil(t, result.AssigneeID)
	assert.True(t, assigneeID.IsEqual(*result.AssigneeID))
	dispatcher.AssertExpectations(t)
}

func TestStartDispatchCommandHandler_Handle_AlreadyRunning(t *testing.T) {
	ctx := t.Context()
	taskID := kernel.NewUUID()

	cmd, err := commands.NewStartDispatchCommand(taskID)
	require.NoError(t, err)

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", ctx, taskID).
		Return(dispatch.Result{}, dispatch.ErrDispatchInProgress).
		Once()

	handler := commands.NewStartDispatchCommandHandler(dispatcher)
	_, err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, dispatch.ErrDispatchInProgress)
}
