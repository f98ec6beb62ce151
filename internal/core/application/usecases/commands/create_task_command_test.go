package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrigin(t *testing.T) kernel.GeoPoint {
	t.Helper()
	origin, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	return origin
}

func TestNewCreateTaskCommand(t *testing.T) {
	taskID := kernel.NewUUID()
	origin := validOrigin(t)

	cmd, err := commands.NewCreateTaskCommand(taskID, task.FulfillmentAssignment, origin)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.True(t, taskID.IsEqual(cmd.TaskID()))
	assert.Equal(t, task.FulfillmentAssignment, cmd.Kind())
	equal, err := origin.IsEqual(cmd.Origin())
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestNewCreateTaskCommand_InvalidArguments(t *testing.T) {
	origin := validOrigin(t)

	tests := map[string]func() (commands.CreateTaskCommand, error){
		"zero task ID": func() (commands.CreateTaskCommand, error) {
			return commands.NewCreateTaskCommand(kernel.UUID{}, task.FulfillmentAssignment, origin)
		},
		"unknown kind": func() (commands.CreateTaskCommand, error) {
			return commands.NewCreateTaskCommand(kernel.NewUUID(), task.UnknownKind, origin)
		},
		"zero origin": func() (commands.CreateTaskCommand, error) {
			return commands.NewCreateTaskCommand(kernel.NewUUID(), task.CarriageAssignment, kernel.GeoPoint{})
		},
	}

	for name, build := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := build()
			require.Error(t, err)
		})
	}
}

func TestCreateTaskCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.CreateTaskCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateTaskCommandIsNotConstructed)
}
