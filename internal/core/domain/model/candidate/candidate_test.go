package candidate_test

import (
	"testing"

	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation(t *testing.T) kernel.GeoPoint {
	t.Helper()
	location, err := kernel.NewGeoPoint(12.97, 77.59)
	require.NoError(t, err)
	return location
}

func TestNewCandidate(t *testing.T) {
	t.Run("should create available candidate", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := candidate.NewCandidate(id, "Alice", task.CarriageAssignment, testLocation(t))

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Alice", c.Name())
		assert.Equal(t, task.CarriageAssignment, c.Kind())
		assert.True(t, c.IsAvailable())
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := candidate.NewCandidate(kernel.NewUUID(), "", task.CarriageAssignment, testLocation(t))

		require.Error(t, err)
		require.ErrorIs(t, err, candidate.ErrNameIsRequired)
	})

	t.Run("should reject invalid kind", func(t *testing.T) {
		_, err := candidate.NewCandidate(kernel.NewUUID(), "Bob", task.UnknownKind, testLocation(t))

		require.Error(t, err)
	})

	t.Run("should reject zero-value location", func(t *testing.T) {
		var location kernel.GeoPoint

		_, err := candidate.NewCandidate(kernel.NewUUID(), "Bob", task.CarriageAssignment, location)

		require.Error(t, err)
	})

	t.Run("should aggregate multiple validation errors", func(t *testing.T) {
		var zeroID kernel.UUID
		var location kernel.GeoPoint

		_, err := candidate.NewCandidate(zeroID, "", task.UnknownKind, location)

		require.Error(t, err)
		require.ErrorIs(t, err, candidate.ErrNameIsRequired)
	})
}

func TestCandidate_Validate(t *testing.T) {
	t.Run("nil candidate is invalid", func(t *testing.T) {
		var c *candidate.Candidate
		require.ErrorIs(t, c.Validate(), candidate.ErrCandidateIsNotConstructed)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var c candidate.Candidate
		require.ErrorIs(t, c.Validate(), candidate.ErrCandidateIsNotConstructed)
	})
}

func TestCandidate_Availability(t *testing.T) {
	t.Run("mark busy and release", func(t *testing.T) {
		c, _ := candidate.NewCandidate(kernel.NewUUID(), "Carol", task.FulfillmentAssignment, testLocation(t))

		require.NoError(t, c.MarkBusy())
		assert.False(t, c.IsAvailable())

		require.NoError(t, c.Release())
		assert.True(t, c.IsAvailable())
	})

	t.Run("zero value cannot flip availability", func(t *testing.T) {
		var c candidate.Candidate
		require.Error(t, c.MarkBusy())
		require.Error(t, c.Release())
	})
}

func TestRestoreCandidate(t *testing.T) {
	t.Run("restores busy candidate", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := candidate.RestoreCandidate(id, "Dave", task.CarriageAssignment, testLocation(t), false)

		require.NoError(t, err)
		assert.False(t, c.IsAvailable())
		assert.True(t, c.ID().IsEqual(id))
	})
}

func TestCandidate_MoveTo(t *testing.T) {
	c, _ := candidate.NewCandidate(kernel.NewUUID(), "Eve", task.CarriageAssignment, testLocation(t))
	next, _ := kernel.NewGeoPoint(13.0, 77.6)

	require.NoError(t, c.MoveTo(next))

	equal, err := c.Location().IsEqual(next)
	require.NoError(t, err)
	assert.True(t, equal)
}
