package editor

import (
	"fmt"

	"fitforge/workout-builder/internal/domain"
)

// newBlock builds a block for the given kind, applying the kind's timing
// defaults and display-name label. position is the 1-based position the block
// will occupy, used for the generic "Block {N}" label.
func newBlock(kind *domain.StructureKind, position int) (*domain.Block, error) {
	b := &domain.Block{
		ID:        NewID(),
		Exercises: []*domain.Exercise{},
	}
	if kind == nil {
		b.Label = fmt.Sprintf("Block %d", position)
		return b, nil
	}
	meta, ok := domain.MetaFor(*kind)
	if !ok {
		return nil, ErrUnknownStructure
	}
	k := *kind
	b.Structure = &k
	b.Label = meta.DisplayName
	meta.ApplyDefaults(b)
	return b, nil
}

// AddBlock appends a new block. With a structure kind the label is the
// kind's display name and the kind's timing defaults are applied; without
// one the block is generic and labelled "Block {N}" where N is its 1-based
// position after insertion.
func AddBlock(w *domain.WorkoutStructure, kind *domain.StructureKind) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := newBlock(kind, len(out.Blocks)+1)
	if err != nil {
		return nil, err
	}
	out.Blocks = append(out.Blocks, b)
	return out, nil
}

// DeleteBlock removes exactly one block by index.
func DeleteBlock(w *domain.WorkoutStructure, blockIdx int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	if blockIdx < 0 || blockIdx >= len(out.Blocks) {
		return nil, ErrBlockNotFound
	}
	next := make([]*domain.Block, 0, len(out.Blocks)-1)
	next = append(next, out.Blocks[:blockIdx]...)
	next = append(next, out.Blocks[blockIdx+1:]...)
	out.Blocks = next
	return out, nil
}

// BlockPatch is a partial update for a block. Assigning a Structure also
// applies that kind's timing defaults, mirroring what AddBlock does.
type BlockPatch struct {
	Label                *string               `json:"label,omitempty"`
	Structure            *domain.StructureKind `json:"structure,omitempty"`
	Rounds               *int                  `json:"rounds,omitempty"`
	TimeCapSec           *int                  `json:"time_cap_sec,omitempty"`
	TimeWorkSec          *int                  `json:"time_work_sec,omitempty"`
	TimeRestSec          *int                  `json:"time_rest_sec,omitempty"`
	RestBetweenRoundsSec *int                  `json:"rest_between_rounds_sec,omitempty"`
	RestOverride         *domain.RestOverride  `json:"rest_override,omitempty"`
}

// UpdateBlock shallow-merges the patch onto the block.
func UpdateBlock(w *domain.WorkoutStructure, blockIdx int, patch BlockPatch) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := resolveBlock(out, blockIdx)
	if err != nil {
		return nil, err
	}
	if patch.Structure != nil {
		meta, ok := domain.MetaFor(*patch.Structure)
		if !ok {
			return nil, ErrUnknownStructure
		}
		k := *patch.Structure
		b.Structure = &k
		meta.ApplyDefaults(b)
	}
	if patch.Label != nil {
		b.Label = *patch.Label
	}
	if patch.Rounds != nil {
		b.Rounds = copyInt(patch.Rounds)
	}
	if patch.TimeCapSec != nil {
		b.TimeCapSec = copyInt(patch.TimeCapSec)
	}
	if patch.TimeWorkSec != nil {
		b.TimeWorkSec = copyInt(patch.TimeWorkSec)
	}
	if patch.TimeRestSec != nil {
		b.TimeRestSec = copyInt(patch.TimeRestSec)
	}
	if patch.RestBetweenRoundsSec != nil {
		b.RestBetweenRoundsSec = copyInt(patch.RestBetweenRoundsSec)
	}
	if patch.RestOverride != nil {
		ro := *patch.RestOverride
		ro.RestSec = copyInt(patch.RestOverride.RestSec)
		b.RestOverride = &ro
	}
	return out, nil
}

// AddWarmupBlock prepends a warmup block with the warmup defaults applied.
func AddWarmupBlock(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	kind := domain.StructureWarmup
	b, err := newBlock(&kind, 1)
	if err != nil {
		return nil, err
	}
	out.Blocks = append([]*domain.Block{b}, out.Blocks...)
	return out, nil
}

// AddCooldownBlock appends a cooldown block with the cooldown defaults
// applied.
func AddCooldownBlock(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	kind := domain.StructureCooldown
	b, err := newBlock(&kind, len(out.Blocks)+1)
	if err != nil {
		return nil, err
	}
	out.Blocks = append(out.Blocks, b)
	return out, nil
}

// SaveSettings replaces the workout's title and settings wholesale.
func SaveSettings(w *domain.WorkoutStructure, title string, settings *domain.WorkoutSettings) *domain.WorkoutStructure {
	out := CloneWorkout(w)
	out.Title = title
	out.Settings = cloneSettings(settings)
	return out
}

// MigrateLegacyWarmup converts the deprecated settings.workoutWarmup flag
// into an explicit warmup block. If the flag is enabled and no warmup block
// exists yet, one is prepended; the legacy field is cleared either way. The
// second return reports whether anything changed (false means the input was
// returned as-is).
func MigrateLegacyWarmup(w *domain.WorkoutStructure) (*domain.WorkoutStructure, bool) {
	if w == nil || w.Settings == nil || w.Settings.WorkoutWarmup == nil {
		return w, false
	}
	needsBlock := w.Settings.WorkoutWarmup.Enabled
	for _, b := range w.Blocks {
		if b != nil && b.HasStructure(domain.StructureWarmup) {
			needsBlock = false
			break
		}
	}

	out := CloneWorkout(w)
	if needsBlock {
		kind := domain.StructureWarmup
		b, _ := newBlock(&kind, 1)
		if d := w.Settings.WorkoutWarmup.DurationSec; d != nil {
			b.TimeCapSec = copyInt(d)
		}
		out.Blocks = append([]*domain.Block{b}, out.Blocks...)
	}
	out.Settings.WorkoutWarmup = nil
	return out, true
}
