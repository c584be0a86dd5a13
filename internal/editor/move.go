package editor

import "fitforge/workout-builder/internal/domain"

// DragItemType identifies what a drag descriptor points at.
type DragItemType string

const (
	DragBlock            DragItemType = "block"
	DragExercise         DragItemType = "exercise"
	DragSupersetExercise DragItemType = "superset-exercise"
)

// DragItem describes one end of a drag-and-drop gesture: the stable entity id
// plus the coordinates the UI resolved for it.
type DragItem struct {
	ID            string       `json:"id"`
	Type          DragItemType `json:"type"`
	BlockIndex    int          `json:"block_index"`
	ExerciseIndex int          `json:"exercise_index"`
	SupersetIndex *int         `json:"superset_index,omitempty"`
}

func (d DragItem) supersetRef() *int {
	if d.Type == DragSupersetExercise {
		return d.SupersetIndex
	}
	return nil
}

// DragEnd resolves a completed drag gesture.
//
// A drop with no target, or onto the drag source itself, is a no-op: the
// input tree is returned unchanged (same reference) with changed == false,
// and nothing downstream should fire. Blocks reorder only among blocks.
// Exercises reorder in place when both ends resolve to the same container and
// become a cross-container move otherwise.
func DragEnd(w *domain.WorkoutStructure, active, over DragItem) (*domain.WorkoutStructure, bool, error) {
	if over.ID == "" || over.ID == active.ID {
		return w, false, nil
	}

	if active.Type == DragBlock {
		if over.Type != DragBlock {
			return w, false, nil
		}
		out, err := ReorderBlocks(w, active.BlockIndex, over.BlockIndex)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}

	srcSS := active.supersetRef()
	dstSS := over.supersetRef()
	if active.BlockIndex == over.BlockIndex && eqIntPtr(srcSS, dstSS) {
		out, err := reorderExercises(w, active.BlockIndex, srcSS, active.ExerciseIndex, over.ExerciseIndex)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}

	out, err := MoveExercise(w, active.BlockIndex, active.ExerciseIndex, srcSS, over.BlockIndex, over.ExerciseIndex, dstSS)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// ReorderBlocks moves the block at from so it ends up at index to, with the
// usual remove-then-insert semantics.
func ReorderBlocks(w *domain.WorkoutStructure, from, to int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	if from < 0 || from >= len(out.Blocks) || to < 0 || to >= len(out.Blocks) {
		return nil, ErrBlockNotFound
	}
	b := out.Blocks[from]
	rest := make([]*domain.Block, 0, len(out.Blocks)-1)
	rest = append(rest, out.Blocks[:from]...)
	rest = append(rest, out.Blocks[from+1:]...)
	next := make([]*domain.Block, 0, len(out.Blocks))
	next = append(next, rest[:to]...)
	next = append(next, b)
	next = append(next, rest[to:]...)
	out.Blocks = next
	return out, nil
}

// reorderExercises moves an exercise within a single container: remove at
// from, insert at to. The target index addresses the post-removal list, which
// is what a drop "onto" another item means for an in-place reorder.
func reorderExercises(w *domain.WorkoutStructure, blockIdx int, supersetIdx *int, from, to int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	b, err := resolveBlock(out, blockIdx)
	if err != nil {
		return nil, err
	}
	get, set, err := containerAccess(b, supersetIdx)
	if err != nil {
		return nil, err
	}
	list := get()
	if from < 0 || from >= len(list) || list[from] == nil {
		return nil, ErrExerciseNotFound
	}
	ex := list[from]
	list = spliceOut(list, from)
	to = clamp(to, 0, len(list))
	set(spliceIn(list, to, ex))
	return out, nil
}

// MoveExercise removes the exercise at the source coordinates and inserts it
// into the target container at targetExerciseIdx, creating the target
// superset when its index is exactly one past the end of the list.
//
// Here targetExerciseIdx addresses the pre-removal list: when source and
// target are the same container and the source precedes the raw target, the
// index is decremented by one so the item still lands in front of the element
// it was dropped on. The adjusted index is clamped to the container bounds.
func MoveExercise(w *domain.WorkoutStructure, srcBlockIdx, srcExerciseIdx int, srcSupersetIdx *int, dstBlockIdx, dstExerciseIdx int, dstSupersetIdx *int) (*domain.WorkoutStructure, error) {
	out := CloneWorkout(w)
	srcBlock, err := resolveBlock(out, srcBlockIdx)
	if err != nil {
		return nil, err
	}
	dstBlock, err := resolveBlock(out, dstBlockIdx)
	if err != nil {
		return nil, err
	}

	getSrc, setSrc, err := containerAccess(srcBlock, srcSupersetIdx)
	if err != nil {
		return nil, err
	}
	srcList := getSrc()
	if srcExerciseIdx < 0 || srcExerciseIdx >= len(srcList) || srcList[srcExerciseIdx] == nil {
		return nil, ErrExerciseNotFound
	}
	ex := srcList[srcExerciseIdx]
	setSrc(spliceOut(srcList, srcExerciseIdx))

	var getDst func() []*domain.Exercise
	var setDst func([]*domain.Exercise)
	if dstSupersetIdx != nil {
		ss, err := resolveOrCreateSuperset(dstBlock, *dstSupersetIdx)
		if err != nil {
			return nil, err
		}
		getDst = func() []*domain.Exercise { return ss.Exercises }
		setDst = func(l []*domain.Exercise) { ss.Exercises = l }
	} else {
		getDst = func() []*domain.Exercise { return dstBlock.Exercises }
		setDst = func(l []*domain.Exercise) { dstBlock.Exercises = l }
	}

	idx := dstExerciseIdx
	sameContainer := srcBlockIdx == dstBlockIdx && eqIntPtr(srcSupersetIdx, dstSupersetIdx)
	if sameContainer && srcExerciseIdx < idx {
		idx--
	}
	dstList := getDst()
	idx = clamp(idx, 0, len(dstList))
	setDst(spliceIn(dstList, idx, ex))
	return out, nil
}

func containerAccess(b *domain.Block, supersetIdx *int) (func() []*domain.Exercise, func([]*domain.Exercise), error) {
	if supersetIdx == nil {
		return func() []*domain.Exercise { return b.Exercises },
			func(l []*domain.Exercise) { b.Exercises = l },
			nil
	}
	ss, err := resolveSuperset(b, *supersetIdx)
	if err != nil {
		return nil, nil, err
	}
	return func() []*domain.Exercise { return ss.Exercises },
		func(l []*domain.Exercise) { ss.Exercises = l },
		nil
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
