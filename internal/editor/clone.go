package editor

import "fitforge/workout-builder/internal/domain"

// CloneWorkout deep-copies the whole tree. Every mutation operates on a clone
// so the caller's previous tree is never aliased.
func CloneWorkout(w *domain.WorkoutStructure) *domain.WorkoutStructure {
	if w == nil {
		return nil
	}
	out := *w
	out.Settings = cloneSettings(w.Settings)
	out.WorkoutTypeConfidence = copyFloat(w.WorkoutTypeConfidence)
	if w.Blocks != nil {
		out.Blocks = make([]*domain.Block, len(w.Blocks))
		for i, b := range w.Blocks {
			out.Blocks[i] = cloneBlock(b)
		}
	}
	return &out
}

func cloneSettings(s *domain.WorkoutSettings) *domain.WorkoutSettings {
	if s == nil {
		return nil
	}
	out := *s
	out.DefaultRestSec = copyInt(s.DefaultRestSec)
	if s.WorkoutWarmup != nil {
		lw := *s.WorkoutWarmup
		lw.DurationSec = copyInt(s.WorkoutWarmup.DurationSec)
		out.WorkoutWarmup = &lw
	}
	return &out
}

func cloneBlock(b *domain.Block) *domain.Block {
	if b == nil {
		return nil
	}
	out := *b
	if b.Structure != nil {
		kind := *b.Structure
		out.Structure = &kind
	}
	if b.Exercises != nil {
		// Holes (nil elements) are preserved; they carry ordering meaning.
		out.Exercises = make([]*domain.Exercise, len(b.Exercises))
		for i, ex := range b.Exercises {
			out.Exercises[i] = cloneExercise(ex)
		}
	}
	if b.Supersets != nil {
		out.Supersets = make([]*domain.Superset, len(b.Supersets))
		for i, ss := range b.Supersets {
			out.Supersets[i] = cloneSuperset(ss)
		}
	}
	out.Rounds = copyInt(b.Rounds)
	out.TimeCapSec = copyInt(b.TimeCapSec)
	out.TimeWorkSec = copyInt(b.TimeWorkSec)
	out.TimeRestSec = copyInt(b.TimeRestSec)
	out.RestBetweenRoundsSec = copyInt(b.RestBetweenRoundsSec)
	if b.RestOverride != nil {
		ro := *b.RestOverride
		ro.RestSec = copyInt(b.RestOverride.RestSec)
		out.RestOverride = &ro
	}
	return &out
}

func cloneSuperset(s *domain.Superset) *domain.Superset {
	if s == nil {
		return nil
	}
	out := *s
	if s.Exercises != nil {
		out.Exercises = make([]*domain.Exercise, len(s.Exercises))
		for i, ex := range s.Exercises {
			out.Exercises[i] = cloneExercise(ex)
		}
	}
	out.Rounds = copyInt(s.Rounds)
	out.RestBetweenSec = copyInt(s.RestBetweenSec)
	return &out
}

func cloneExercise(ex *domain.Exercise) *domain.Exercise {
	if ex == nil {
		return nil
	}
	out := *ex
	out.Sets = copyInt(ex.Sets)
	out.Reps = copyInt(ex.Reps)
	out.DurationSec = copyInt(ex.DurationSec)
	out.RestSec = copyInt(ex.RestSec)
	out.WarmupSets = copyInt(ex.WarmupSets)
	out.WarmupReps = copyInt(ex.WarmupReps)
	out.DistanceM = copyFloat(ex.DistanceM)
	if ex.RepsRange != nil {
		rr := *ex.RepsRange
		out.RepsRange = &rr
	}
	if ex.DistanceRange != nil {
		dr := *ex.DistanceRange
		out.DistanceRange = &dr
	}
	return &out
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intPtr(v int) *int {
	return &v
}
