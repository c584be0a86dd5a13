package editor

import "fitforge/workout-builder/internal/domain"

// Defaults for a freshly added exercise.
const (
	defaultSets           = 3
	defaultReps           = 10
	defaultRestSec        = 60
	defaultSupersetRest   = 60
)

// ExercisePatch is a partial update. Nil fields are left untouched.
// Setting Reps clears RepsRange and vice versa; DistanceM and DistanceRange
// behave the same way.
type ExercisePatch struct {
	Name          *string               `json:"name,omitempty"`
	Type          *string               `json:"type,omitempty"`
	Sets          *int                  `json:"sets,omitempty"`
	Reps          *int                  `json:"reps,omitempty"`
	RepsRange     *domain.RepsRange     `json:"reps_range,omitempty"`
	DurationSec   *int                  `json:"duration_sec,omitempty"`
	DistanceM     *float64              `json:"distance_m,omitempty"`
	DistanceRange *domain.DistanceRange `json:"distance_range,omitempty"`
	RestSec       *int                  `json:"rest_sec,omitempty"`
	RestType      *string               `json:"rest_type,omitempty"`
	WarmupSets    *int                  `json:"warmup_sets,omitempty"`
	WarmupReps    *int                  `json:"warmup_reps,omitempty"`
	Notes         *string               `json:"notes,omitempty"`
}

func applyExercisePatch(ex *domain.Exercise, p ExercisePatch) {
	if p.Name != nil {
		ex.Name = *p.Name
	}
	if p.Type != nil {
		ex.Type = *p.Type
	}
	if p.Sets != nil {
		ex.Sets = copyInt(p.Sets)
	}
	if p.Reps != nil {
		ex.Reps = copyInt(p.Reps)
		ex.RepsRange = nil
	}
	if p.RepsRange != nil {
		rr := *p.RepsRange
		ex.RepsRange = &rr
		ex.Reps = nil
	}
	if p.DurationSec != nil {
		ex.DurationSec = copyInt(p.DurationSec)
	}
	if p.DistanceM != nil {
		ex.DistanceM = copyFloat(p.DistanceM)
		ex.DistanceRange = nil
	}
	if p.DistanceRange != nil {
		dr := *p.DistanceRange
		ex.DistanceRange = &dr
		ex.DistanceM = nil
	}
	if p.RestSec != nil {
		ex.RestSec = copyInt(p.RestSec)
	}
	if p.RestType != nil {
		ex.RestType = *p.RestType
	}
	if p.WarmupSets != nil {
		ex.WarmupSets = copyInt(p.WarmupSets)
	}
	if p.WarmupReps != nil {
		ex.WarmupReps = copyInt(p.WarmupReps)
	}
	if p.Notes != nil {
		ex.Notes = *p.Notes
	}
}

// UpdateExercise merges the patch onto the exercise at the given
// coordinates. With supersetIdx the exercise is looked up inside that
// superset, otherwise in the block-level list.
func UpdateExercise(w *domain.WorkoutStructure, blockIdx, exerciseIdx int, patch ExercisePatch, supersetIdx *int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	ex, err := resolveExercise(out, blockIdx, exerciseIdx, supersetIdx)
	if err != nil {
		return nil, err
	}
	applyExercisePatch(ex, patch)
	return out, nil
}

// DeleteExercise removes exactly one exercise; subsequent entries in its
// container shift down by one. Deleting the last exercise of a superset
// leaves the (now empty) superset in place.
func DeleteExercise(w *domain.WorkoutStructure, blockIdx, exerciseIdx int, supersetIdx *int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := resolveBlock(out, blockIdx)
	if err != nil {
		return nil, err
	}
	if supersetIdx != nil {
		ss, err := resolveSuperset(b, *supersetIdx)
		if err != nil {
			return nil, err
		}
		if exerciseIdx < 0 || exerciseIdx >= len(ss.Exercises) || ss.Exercises[exerciseIdx] == nil {
			return nil, ErrExerciseNotFound
		}
		ss.Exercises = spliceOut(ss.Exercises, exerciseIdx)
		return out, nil
	}
	if exerciseIdx < 0 || exerciseIdx >= len(b.Exercises) || b.Exercises[exerciseIdx] == nil {
		return nil, ErrExerciseNotFound
	}
	b.Exercises = spliceOut(b.Exercises, exerciseIdx)
	return out, nil
}

// AddExercise appends a new exercise with default sets/reps/rest and a fresh
// id.
//
// With supersetIdx the exercise goes into that superset, creating the
// superset when the index is exactly one past the end of the list.
//
// Without supersetIdx, a block that has supersets but no block-level
// exercises gets the new exercise at index 1 with index 0 left as a hole, so
// it renders after the supersets. Any other block appends to the end.
func AddExercise(w *domain.WorkoutStructure, blockIdx int, name string, supersetIdx *int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := resolveBlock(out, blockIdx)
	if err != nil {
		return nil, err
	}

	ex := &domain.Exercise{
		ID:      NewID(),
		Name:    name,
		Sets:    intPtr(defaultSets),
		Reps:    intPtr(defaultReps),
		RestSec: intPtr(defaultRestSec),
	}

	if supersetIdx != nil {
		ss, err := resolveOrCreateSuperset(b, *supersetIdx)
		if err != nil {
			return nil, err
		}
		ss.Exercises = append(ss.Exercises, ex)
		return out, nil
	}

	if !b.HasBlockExercises() && len(b.Supersets) > 0 {
		b.Exercises = []*domain.Exercise{nil, ex}
		return out, nil
	}
	b.Exercises = append(b.Exercises, ex)
	return out, nil
}

// --- coordinate resolution helpers ---

func resolveBlock(w *domain.WorkoutStructure, blockIdx int) (*domain.Block, error) {
	if blockIdx < 0 || blockIdx >= len(w.Blocks) || w.Blocks[blockIdx] == nil {
		return nil, ErrBlockNotFound
	}
	return w.Blocks[blockIdx], nil
}

func resolveSuperset(b *domain.Block, supersetIdx int) (*domain.Superset, error) {
	if supersetIdx < 0 || supersetIdx >= len(b.Supersets) || b.Supersets[supersetIdx] == nil {
		return nil, ErrSupersetNotFound
	}
	return b.Supersets[supersetIdx], nil
}

// resolveOrCreateSuperset backfills the single slot one past the end of the
// superset list; a larger gap is rejected rather than padded with empties.
func resolveOrCreateSuperset(b *domain.Block, supersetIdx int) (*domain.Superset, error) {
	if supersetIdx < 0 {
		return nil, ErrSupersetNotFound
	}
	if supersetIdx < len(b.Supersets) && b.Supersets[supersetIdx] != nil {
		return b.Supersets[supersetIdx], nil
	}
	if supersetIdx != len(b.Supersets) {
		return nil, ErrSupersetIndexGap
	}
	ss := &domain.Superset{
		ID:             NewID(),
		Exercises:      []*domain.Exercise{},
		RestBetweenSec: intPtr(defaultSupersetRest),
	}
	b.Supersets = append(b.Supersets, ss)
	return ss, nil
}

func resolveExercise(w *domain.WorkoutStructure, blockIdx, exerciseIdx int, supersetIdx *int) (*domain.Exercise, error) {
	b, err := resolveBlock(w, blockIdx)
	if err != nil {
		return nil, err
	}
	list := b.Exercises
	if supersetIdx != nil {
		ss, err := resolveSuperset(b, *supersetIdx)
		if err != nil {
			return nil, err
		}
		list = ss.Exercises
	}
	if exerciseIdx < 0 || exerciseIdx >= len(list) || list[exerciseIdx] == nil {
		return nil, ErrExerciseNotFound
	}
	return list[exerciseIdx], nil
}

func spliceOut(s []*domain.Exercise, i int) []*domain.Exercise {
	out := make([]*domain.Exercise, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}

func spliceIn(s []*domain.Exercise, i int, ex *domain.Exercise) []*domain.Exercise {
	out := make([]*domain.Exercise, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, ex)
	out = append(out, s[i:]...)
	return out
}
