package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetTaskQuery(t *testing.T) {
	taskID := kernel.NewUUID()

	query, err := queries.NewGetTaskQuery(taskID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, taskID.IsEqual(query.TaskID()))
}

func TestNewGetTaskQuery_ZeroID(t *testing.T) {
	_, err := queries.NewGetTaskQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetTaskQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetTaskQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetTaskQueryIsNotConstructed)
}

func TestNewGetUnassignedTasksQuery(t *testing.T) {
	query := queries.NewGetUnassignedTasksQuery()
	require.NoError(t, query.Validate())
}

func TestGetUnassignedTasksQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetUnassignedTasksQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetUnassignedTasksQueryIsNotConstructed)
}
