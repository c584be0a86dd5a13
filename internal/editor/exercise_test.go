package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitforge/workout-builder/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestAddExercise_AppendsToBlockLevelList(t *testing.T) {
	w := twoBlockWorkout()
	got, err := AddExercise(w, 0, "Incline Press", nil)
	require.NoError(t, err)

	require.Len(t, got.Blocks[0].Exercises, 4)
	ex := got.Blocks[0].Exercises[3]
	assert.Equal(t, "Incline Press", ex.Name)
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, 3, *ex.Sets)
	assert.Equal(t, 10, *ex.Reps)
	assert.Equal(t, 60, *ex.RestSec)

	// Input untouched.
	assert.Len(t, w.Blocks[0].Exercises, 3)
}

func TestAddExercise_SparseSlotWhenBlockOnlyHasSupersets(t *testing.T) {
	w := twoBlockWorkout()
	got, err := AddExercise(w, 1, "Farmer Carry", nil)
	require.NoError(t, err)

	// Index 0 stays reserved so the exercise renders after the supersets.
	require.Len(t, got.Blocks[1].Exercises, 2)
	assert.Nil(t, got.Blocks[1].Exercises[0])
	require.NotNil(t, got.Blocks[1].Exercises[1])
	assert.Equal(t, "Farmer Carry", got.Blocks[1].Exercises[1].Name)
}

func TestAddExercise_AppendsWhenBlockLevelExercisesExist(t *testing.T) {
	w := twoBlockWorkout()
	w.Blocks[1].Exercises = []*domain.Exercise{nil, exercise("e9", "Row")}

	got, err := AddExercise(w, 1, "Curl", nil)
	require.NoError(t, err)
	require.Len(t, got.Blocks[1].Exercises, 3)
	assert.Equal(t, "Curl", got.Blocks[1].Exercises[2].Name)
}

func TestAddExercise_IntoSuperset(t *testing.T) {
	w := twoBlockWorkout()
	got, err := AddExercise(w, 1, "Shrug", intPtr(0))
	require.NoError(t, err)
	require.Len(t, got.Blocks[1].Supersets[0].Exercises, 3)
	assert.Equal(t, "Shrug", got.Blocks[1].Supersets[0].Exercises[2].Name)
}

func TestAddExercise_AutoCreatesNextSuperset(t *testing.T) {
	w := twoBlockWorkout()
	got, err := AddExercise(w, 1, "Shrug", intPtr(1))
	require.NoError(t, err)

	require.Len(t, got.Blocks[1].Supersets, 2)
	ss := got.Blocks[1].Supersets[1]
	assert.NotEmpty(t, ss.ID)
	assert.Equal(t, 60, *ss.RestBetweenSec)
	require.Len(t, ss.Exercises, 1)
	assert.Equal(t, "Shrug", ss.Exercises[0].Name)
}

func TestAddExercise_RejectsSupersetGap(t *testing.T) {
	w := twoBlockWorkout()
	_, err := AddExercise(w, 1, "Shrug", intPtr(3))
	assert.ErrorIs(t, err, ErrSupersetIndexGap)
}

func TestAddExercise_BlockOutOfRange(t *testing.T) {
	w := twoBlockWorkout()
	_, err := AddExercise(w, 5, "Shrug", nil)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestUpdateExercise_MergesPatch(t *testing.T) {
	w := twoBlockWorkout()
	got, err := UpdateExercise(w, 0, 1, ExercisePatch{Sets: intPtr(5), Notes: strPtr("pause reps")}, nil)
	require.NoError(t, err)

	ex := got.Blocks[0].Exercises[1]
	assert.Equal(t, 5, *ex.Sets)
	assert.Equal(t, "pause reps", ex.Notes)
	assert.Equal(t, "Overhead Press", ex.Name, "untouched fields survive")

	// Siblings untouched.
	assert.Equal(t, "Bench Press", got.Blocks[0].Exercises[0].Name)
	assert.Equal(t, 3, *got.Blocks[0].Exercises[0].Sets)
}

func TestUpdateExercise_RepsClearsRepsRange(t *testing.T) {
	w := twoBlockWorkout()
	w.Blocks[0].Exercises[0].Reps = nil
	w.Blocks[0].Exercises[0].RepsRange = &domain.RepsRange{Min: 8, Max: 12}

	got, err := UpdateExercise(w, 0, 0, ExercisePatch{Reps: intPtr(10)}, nil)
	require.NoError(t, err)
	ex := got.Blocks[0].Exercises[0]
	assert.Equal(t, 10, *ex.Reps)
	assert.Nil(t, ex.RepsRange)
}

func TestUpdateExercise_RepsRangeClearsReps(t *testing.T) {
	w := twoBlockWorkout()
	got, err := UpdateExercise(w, 0, 0, ExercisePatch{RepsRange: &domain.RepsRange{Min: 6, Max: 8}}, nil)
	require.NoError(t, err)
	ex := got.Blocks[0].Exercises[0]
	assert.Nil(t, ex.Reps)
	require.NotNil(t, ex.RepsRange)
	assert.Equal(t, 6, ex.RepsRange.Min)
}

func TestUpdateExercise_DistanceExclusivity(t *testing.T) {
	w := twoBlockWorkout()
	dm := 400.0
	got, err := UpdateExercise(w, 0, 0, ExercisePatch{DistanceM: &dm}, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Blocks[0].Exercises[0].DistanceM)

	got2, err := UpdateExercise(got, 0, 0, ExercisePatch{DistanceRange: &domain.DistanceRange{MinM: 200, MaxM: 400}}, nil)
	require.NoError(t, err)
	ex := got2.Blocks[0].Exercises[0]
	assert.Nil(t, ex.DistanceM)
	require.NotNil(t, ex.DistanceRange)
}

func TestUpdateExercise_InsideSuperset(t *testing.T) {
	w := twoBlockWorkout()
	got, err := UpdateExercise(w, 1, 1, ExercisePatch{Name: strPtr("Band Pull-Apart")}, intPtr(0))
	require.NoError(t, err)
	assert.Equal(t, "Band Pull-Apart", got.Blocks[1].Supersets[0].Exercises[1].Name)
}

func TestUpdateExercise_BadCoordinates(t *testing.T) {
	w := twoBlockWorkout()
	_, err := UpdateExercise(w, 0, 9, ExercisePatch{}, nil)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	_, err = UpdateExercise(w, 1, 0, ExercisePatch{}, intPtr(4))
	assert.ErrorIs(t, err, ErrSupersetNotFound)
}

func TestDeleteExercise_PreservesOrder(t *testing.T) {
	w := twoBlockWorkout()
	got, err := DeleteExercise(w, 0, 1, nil)
	require.NoError(t, err)

	require.Len(t, got.Blocks[0].Exercises, 2)
	assert.Equal(t, "e1", got.Blocks[0].Exercises[0].ID)
	assert.Equal(t, "e3", got.Blocks[0].Exercises[1].ID)
	assert.Equal(t, "Bench Press", got.Blocks[0].Exercises[0].Name)
	assert.Equal(t, "Dips", got.Blocks[0].Exercises[1].Name)
}

func TestDeleteExercise_LastInSupersetLeavesEmptySuperset(t *testing.T) {
	w := twoBlockWorkout()
	got, err := DeleteExercise(w, 1, 0, intPtr(0))
	require.NoError(t, err)
	got, err = DeleteExercise(got, 1, 0, intPtr(0))
	require.NoError(t, err)

	require.Len(t, got.Blocks[1].Supersets, 1, "empty superset is not auto-removed")
	assert.Empty(t, got.Blocks[1].Supersets[0].Exercises)
}

func TestMutationsDoNotAliasInput(t *testing.T) {
	w := twoBlockWorkout()
	got, err := UpdateExercise(w, 0, 0, ExercisePatch{Sets: intPtr(8)}, nil)
	require.NoError(t, err)

	require.NotSame(t, w, got)
	require.NotSame(t, w.Blocks[0], got.Blocks[0])
	require.NotSame(t, w.Blocks[0].Exercises[0], got.Blocks[0].Exercises[0])
	assert.Equal(t, 3, *w.Blocks[0].Exercises[0].Sets, "input tree unchanged")
	assert.Equal(t, 8, *got.Blocks[0].Exercises[0].Sets)
}
