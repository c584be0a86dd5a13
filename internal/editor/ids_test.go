package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitforge/workout-builder/internal/domain"
)

func exercise(id, name string) *domain.Exercise {
	return &domain.Exercise{ID: id, Name: name, Sets: intPtr(3), Reps: intPtr(10), RestSec: intPtr(60)}
}

// twoBlockWorkout builds a fully-identified tree: one plain block with three
// exercises, one block with a superset.
func twoBlockWorkout() *domain.WorkoutStructure {
	return &domain.WorkoutStructure{
		Title: "Push Day",
		Blocks: []*domain.Block{
			{
				ID:    "b1",
				Label: "Main",
				Exercises: []*domain.Exercise{
					exercise("e1", "Bench Press"),
					exercise("e2", "Overhead Press"),
					exercise("e3", "Dips"),
				},
			},
			{
				ID:        "b2",
				Label:     "Finisher",
				Exercises: []*domain.Exercise{},
				Supersets: []*domain.Superset{
					{
						ID:             "s1",
						RestBetweenSec: intPtr(60),
						Exercises: []*domain.Exercise{
							exercise("e4", "Lateral Raise"),
							exercise("e5", "Face Pull"),
						},
					},
				},
			},
		},
	}
}

func TestEnsureIDs_CompleteTreeReturnsSameReference(t *testing.T) {
	w := twoBlockWorkout()
	got := EnsureIDs(w)
	assert.Same(t, w, got, "a fully-identified tree must pass through untouched")

	// Idempotence on its own output.
	assert.Same(t, got, EnsureIDs(got))
}

func TestEnsureIDs_BackfillsMissingOnly(t *testing.T) {
	w := twoBlockWorkout()
	w.Blocks[0].Exercises[1].ID = ""
	w.Blocks[1].Supersets[0].ID = ""

	got := EnsureIDs(w)
	require.NotSame(t, w, got)

	assert.Equal(t, "b1", got.Blocks[0].ID, "existing ids are preserved")
	assert.Equal(t, "e1", got.Blocks[0].Exercises[0].ID)
	assert.NotEmpty(t, got.Blocks[0].Exercises[1].ID)
	assert.NotEmpty(t, got.Blocks[1].Supersets[0].ID)
	assert.NotEqual(t, got.Blocks[0].Exercises[1].ID, got.Blocks[1].Supersets[0].ID)

	// Input is untouched.
	assert.Empty(t, w.Blocks[0].Exercises[1].ID)

	// Second pass is a no-op by reference.
	assert.Same(t, got, EnsureIDs(got))
}

func TestEnsureIDs_SkipsHoles(t *testing.T) {
	w := twoBlockWorkout()
	w.Blocks[1].Exercises = []*domain.Exercise{nil, exercise("e9", "Row")}
	got := EnsureIDs(w)
	assert.Same(t, w, got)
}

func TestFingerprint_StableAcrossAllocations(t *testing.T) {
	a := twoBlockWorkout()
	b := twoBlockWorkout()
	require.NotSame(t, a, b)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_ChangesWithIdentityFields(t *testing.T) {
	base := Fingerprint(twoBlockWorkout())

	w := twoBlockWorkout()
	w.Blocks[0].Label = "Strength"
	assert.NotEqual(t, base, Fingerprint(w), "label change")

	w = twoBlockWorkout()
	w.Blocks[0].Exercises[2].Reps = intPtr(12)
	assert.NotEqual(t, base, Fingerprint(w), "numeric field change")

	w = twoBlockWorkout()
	w.Blocks = w.Blocks[:1]
	assert.NotEqual(t, base, Fingerprint(w), "block count change")
}

func TestFingerprint_NoDelimiterCollisions(t *testing.T) {
	// Values that would collide under naive delimiter joining
	// ("x" + "|" + "ab|c" == "x|ab" + "|" + "c").
	a := &domain.WorkoutStructure{Blocks: []*domain.Block{{ID: "x", Label: "ab|c"}}}
	b := &domain.WorkoutStructure{Blocks: []*domain.Block{{ID: "x|ab", Label: "c"}}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}
