package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitforge/workout-builder/internal/domain"
)

func names(list []*domain.Exercise) []string {
	out := make([]string, len(list))
	for i, ex := range list {
		if ex == nil {
			out[i] = "<hole>"
			continue
		}
		out[i] = ex.Name
	}
	return out
}

func TestDragEnd_ReorderWithinBlock(t *testing.T) {
	w := &domain.WorkoutStructure{
		Blocks: []*domain.Block{{
			ID:        "b1",
			Exercises: []*domain.Exercise{exercise("e1", "Squat"), exercise("e2", "Deadlift")},
		}},
	}
	active := DragItem{ID: "e1", Type: DragExercise, BlockIndex: 0, ExerciseIndex: 0}
	over := DragItem{ID: "e2", Type: DragExercise, BlockIndex: 0, ExerciseIndex: 1}

	got, changed, err := DragEnd(w, active, over)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, []string{"Deadlift", "Squat"}, names(got.Blocks[0].Exercises))
}

func TestDragEnd_SameTargetIsNoOp(t *testing.T) {
	w := twoBlockWorkout()
	item := DragItem{ID: "e1", Type: DragExercise, BlockIndex: 0, ExerciseIndex: 0}

	got, changed, err := DragEnd(w, item, item)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, w, got, "no new tree on the no-op path")
}

func TestDragEnd_MissingOverIsNoOp(t *testing.T) {
	w := twoBlockWorkout()
	active := DragItem{ID: "e1", Type: DragExercise, BlockIndex: 0, ExerciseIndex: 0}

	got, changed, err := DragEnd(w, active, DragItem{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, w, got)
}

func TestDragEnd_BlockOntoBlock(t *testing.T) {
	w := twoBlockWorkout()
	active := DragItem{ID: "b2", Type: DragBlock, BlockIndex: 1}
	over := DragItem{ID: "b1", Type: DragBlock, BlockIndex: 0}

	got, changed, err := DragEnd(w, active, over)
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, "b2", got.Blocks[0].ID)
	assert.Equal(t, "b1", got.Blocks[1].ID)
}

func TestDragEnd_BlockOntoExerciseIgnored(t *testing.T) {
	w := twoBlockWorkout()
	active := DragItem{ID: "b1", Type: DragBlock, BlockIndex: 0}
	over := DragItem{ID: "e4", Type: DragSupersetExercise, BlockIndex: 1, ExerciseIndex: 0, SupersetIndex: intPtr(0)}

	got, changed, err := DragEnd(w, active, over)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, w, got)
}

func TestDragEnd_CrossContainerBecomesMove(t *testing.T) {
	w := twoBlockWorkout()
	active := DragItem{ID: "e1", Type: DragExercise, BlockIndex: 0, ExerciseIndex: 0}
	over := DragItem{ID: "e5", Type: DragSupersetExercise, BlockIndex: 1, ExerciseIndex: 1, SupersetIndex: intPtr(0)}

	got, changed, err := DragEnd(w, active, over)
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, []string{"Overhead Press", "Dips"}, names(got.Blocks[0].Exercises))
	assert.Equal(t, []string{"Lateral Raise", "Bench Press", "Face Pull"},
		names(got.Blocks[1].Supersets[0].Exercises))
}

func TestReorderBlocks_OutOfRange(t *testing.T) {
	w := twoBlockWorkout()
	_, err := ReorderBlocks(w, 0, 5)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestMoveExercise_SameContainerDecrementsTarget(t *testing.T) {
	w := &domain.WorkoutStructure{
		Blocks: []*domain.Block{{
			ID: "b1",
			Exercises: []*domain.Exercise{
				exercise("e1", "A"), exercise("e2", "B"), exercise("e3", "C"),
			},
		}},
	}

	// Raw target 2 addresses C in the pre-removal list; after removing A the
	// adjusted index 1 puts A back in front of C.
	got, err := MoveExercise(w, 0, 0, nil, 0, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names(got.Blocks[0].Exercises))
}

func TestMoveExercise_SameContainerBackwardNoAdjustment(t *testing.T) {
	w := &domain.WorkoutStructure{
		Blocks: []*domain.Block{{
			ID: "b1",
			Exercises: []*domain.Exercise{
				exercise("e1", "A"), exercise("e2", "B"), exercise("e3", "C"),
			},
		}},
	}
	got, err := MoveExercise(w, 0, 2, nil, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, names(got.Blocks[0].Exercises))
}

func TestMoveExercise_ClampsTargetIndex(t *testing.T) {
	w := twoBlockWorkout()
	got, err := MoveExercise(w, 0, 0, nil, 1, 99, intPtr(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"Lateral Raise", "Face Pull", "Bench Press"},
		names(got.Blocks[1].Supersets[0].Exercises))
}

func TestMoveExercise_SupersetToBlockLevel(t *testing.T) {
	w := twoBlockWorkout()
	got, err := MoveExercise(w, 1, 0, intPtr(0), 0, 1, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bench Press", "Lateral Raise", "Overhead Press", "Dips"},
		names(got.Blocks[0].Exercises))
	assert.Equal(t, []string{"Face Pull"}, names(got.Blocks[1].Supersets[0].Exercises))
}

func TestMoveExercise_CreatesTargetSupersetOnePastEnd(t *testing.T) {
	w := twoBlockWorkout()
	got, err := MoveExercise(w, 0, 0, nil, 1, 0, intPtr(1))
	require.NoError(t, err)

	require.Len(t, got.Blocks[1].Supersets, 2)
	assert.Equal(t, []string{"Bench Press"}, names(got.Blocks[1].Supersets[1].Exercises))
	assert.Equal(t, 60, *got.Blocks[1].Supersets[1].RestBetweenSec)
}

func TestMoveExercise_RejectsSupersetGap(t *testing.T) {
	w := twoBlockWorkout()
	_, err := MoveExercise(w, 0, 0, nil, 1, 0, intPtr(3))
	assert.ErrorIs(t, err, ErrSupersetIndexGap)
}

func TestMoveExercise_BadSource(t *testing.T) {
	w := twoBlockWorkout()

	_, err := MoveExercise(w, 0, 7, nil, 1, 0, nil)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	_, err = MoveExercise(w, 4, 0, nil, 1, 0, nil)
	assert.ErrorIs(t, err, ErrBlockNotFound)

	// The hole at index 0 is not a movable exercise.
	w.Blocks[1].Exercises = []*domain.Exercise{nil, exercise("e9", "Row")}
	_, err = MoveExercise(w, 1, 0, nil, 0, 0, nil)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}
