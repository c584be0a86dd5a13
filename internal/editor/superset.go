package editor

import "fitforge/workout-builder/internal/domain"

// AddSuperset appends an empty superset to the block, initializing the list
// if absent.
func AddSuperset(w *domain.WorkoutStructure, blockIdx int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := resolveBlock(out, blockIdx)
	if err != nil {
		return nil, err
	}
	b.Supersets = append(b.Supersets, &domain.Superset{
		ID:             NewID(),
		Exercises:      []*domain.Exercise{},
		RestBetweenSec: intPtr(defaultSupersetRest),
	})
	return out, nil
}

// DeleteSuperset removes exactly one superset by index. Exercises it
// contained are discarded; nothing cascades into the block-level list.
func DeleteSuperset(w *domain.WorkoutStructure, blockIdx, supersetIdx int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := resolveBlock(out, blockIdx)
	if err != nil {
		return nil, err
	}
	if supersetIdx < 0 || supersetIdx >= len(b.Supersets) {
		return nil, ErrSupersetNotFound
	}
	next := make([]*domain.Superset, 0, len(b.Supersets)-1)
	next = append(next, b.Supersets[:supersetIdx]...)
	next = append(next, b.Supersets[supersetIdx+1:]...)
	b.Supersets = next
	return out, nil
}

// UpdateSuperset merges timing fields onto a superset.
func UpdateSuperset(w *domain.WorkoutStructure, blockIdx, supersetIdx int, patch SupersetPatch) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := resolveBlock(out, blockIdx)
	if err != nil {
		return nil, err
	}
	ss, err := resolveSuperset(b, supersetIdx)
	if err != nil {
		return nil, err
	}
	if patch.Rounds != nil {
		ss.Rounds = copyInt(patch.Rounds)
	}
	if patch.RestBetweenSec != nil {
		ss.RestBetweenSec = copyInt(patch.RestBetweenSec)
	}
	if patch.RestType != nil {
		ss.RestType = *patch.RestType
	}
	return out, nil
}

// SupersetPatch is a partial update for superset timing fields.
type SupersetPatch struct {
	Rounds         *int    `json:"rounds,omitempty"`
	RestBetweenSec *int    `json:"rest_between_sec,omitempty"`
	RestType       *string `json:"rest_type,omitempty"`
}
