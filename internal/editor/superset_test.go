package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSuperset_InitializesList(t *testing.T) {
	w := twoBlockWorkout()
	require.Empty(t, w.Blocks[0].Supersets)

	got, err := AddSuperset(w, 0)
	require.NoError(t, err)

	require.Len(t, got.Blocks[0].Supersets, 1)
	ss := got.Blocks[0].Supersets[0]
	assert.NotEmpty(t, ss.ID)
	assert.NotNil(t, ss.Exercises)
	assert.Empty(t, ss.Exercises)
	assert.Equal(t, 60, *ss.RestBetweenSec)
}

func TestAddSuperset_AppendsToExisting(t *testing.T) {
	w := twoBlockWorkout()
	got, err := AddSuperset(w, 1)
	require.NoError(t, err)
	require.Len(t, got.Blocks[1].Supersets, 2)
	assert.Equal(t, "s1", got.Blocks[1].Supersets[0].ID, "existing superset keeps its slot")
}

func TestDeleteSuperset_DiscardsContainedExercises(t *testing.T) {
	w := twoBlockWorkout()
	got, err := DeleteSuperset(w, 1, 0)
	require.NoError(t, err)

	assert.Empty(t, got.Blocks[1].Supersets)
	assert.Empty(t, got.Blocks[1].Exercises, "nothing cascades to the block-level list")
}

func TestDeleteSuperset_OutOfRange(t *testing.T) {
	w := twoBlockWorkout()
	_, err := DeleteSuperset(w, 1, 3)
	assert.ErrorIs(t, err, ErrSupersetNotFound)
}

func TestUpdateSuperset(t *testing.T) {
	w := twoBlockWorkout()
	got, err := UpdateSuperset(w, 1, 0, SupersetPatch{Rounds: intPtr(4), RestBetweenSec: intPtr(90)})
	require.NoError(t, err)

	ss := got.Blocks[1].Supersets[0]
	assert.Equal(t, 4, *ss.Rounds)
	assert.Equal(t, 90, *ss.RestBetweenSec)
	assert.Len(t, ss.Exercises, 2, "exercises untouched")
}
