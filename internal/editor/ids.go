package editor

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/google/uuid"

	"fitforge/workout-builder/internal/domain"
)

// NewID allocates an id for a block, superset or exercise.
func NewID() string {
	return uuid.NewString()
}

// EnsureIDs backfills missing ids across the tree.
//
// If every block, superset and exercise already carries a non-empty id the
// input is returned unchanged, same reference, which makes the call
// idempotent: EnsureIDs(EnsureIDs(w)) == EnsureIDs(w). Otherwise a cloned
// tree is returned with fresh ids on every entity that lacked one; existing
// ids are never touched.
func EnsureIDs(w *domain.WorkoutStructure) *domain.WorkoutStructure {
	if w == nil || hasAllIDs(w) {
		return w
	}
	out := CloneWorkout(w)
	for _, b := range out.Blocks {
		if b == nil {
			continue
		}
		if b.ID == "" {
			b.ID = NewID()
		}
		for _, ex := range b.Exercises {
			if ex != nil && ex.ID == "" {
				ex.ID = NewID()
			}
		}
		for _, ss := range b.Supersets {
			if ss == nil {
				continue
			}
			if ss.ID == "" {
				ss.ID = NewID()
			}
			for _, ex := range ss.Exercises {
				if ex != nil && ex.ID == "" {
					ex.ID = NewID()
				}
			}
		}
	}
	return out
}

func hasAllIDs(w *domain.WorkoutStructure) bool {
	for _, b := range w.Blocks {
		if b == nil {
			continue
		}
		if b.ID == "" {
			return false
		}
		for _, ex := range b.Exercises {
			if ex != nil && ex.ID == "" {
				return false
			}
		}
		for _, ss := range b.Supersets {
			if ss == nil {
				continue
			}
			if ss.ID == "" {
				return false
			}
			for _, ex := range ss.Exercises {
				if ex != nil && ex.ID == "" {
					return false
				}
			}
		}
	}
	return true
}

// Fingerprint hashes the identity-relevant fields of the tree: block count,
// labels, entity ids, exercise names and numeric fields. Two trees with the
// same fingerprint are interchangeable for id-backfill and memoization
// purposes even when they are distinct allocations.
//
// Fields are written length-prefixed so that values can never collide across
// field boundaries.
func Fingerprint(w *domain.WorkoutStructure) string {
	h := sha256.New()
	if w == nil {
		return hex.EncodeToString(h.Sum(nil))
	}
	writeField(h, w.Title)
	writeField(h, fmt.Sprintf("blocks:%d", len(w.Blocks)))
	for _, b := range w.Blocks {
		if b == nil {
			writeField(h, "<nil-block>")
			continue
		}
		writeField(h, b.ID)
		writeField(h, b.Label)
		if b.Structure != nil {
			writeField(h, string(*b.Structure))
		} else {
			writeField(h, "")
		}
		writeIntField(h, b.Rounds)
		writeIntField(h, b.TimeCapSec)
		writeIntField(h, b.TimeWorkSec)
		writeIntField(h, b.TimeRestSec)
		writeIntField(h, b.RestBetweenRoundsSec)
		for _, ex := range b.Exercises {
			writeExercise(h, ex)
		}
		for _, ss := range b.Supersets {
			if ss == nil {
				writeField(h, "<nil-superset>")
				continue
			}
			writeField(h, ss.ID)
			writeIntField(h, ss.Rounds)
			writeIntField(h, ss.RestBetweenSec)
			for _, ex := range ss.Exercises {
				writeExercise(h, ex)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeExercise(h hash.Hash, ex *domain.Exercise) {
	if ex == nil {
		writeField(h, "<hole>")
		return
	}
	writeField(h, ex.ID)
	writeField(h, ex.Name)
	writeIntField(h, ex.Sets)
	writeIntField(h, ex.Reps)
	if ex.RepsRange != nil {
		writeField(h, fmt.Sprintf("rr:%d-%d", ex.RepsRange.Min, ex.RepsRange.Max))
	}
	writeIntField(h, ex.DurationSec)
	if ex.DistanceM != nil {
		writeField(h, fmt.Sprintf("dm:%g", *ex.DistanceM))
	}
	if ex.DistanceRange != nil {
		writeField(h, fmt.Sprintf("dr:%g-%g", ex.DistanceRange.MinM, ex.DistanceRange.MaxM))
	}
	writeIntField(h, ex.RestSec)
}

func writeField(h hash.Hash, s string) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}

func writeIntField(h hash.Hash, p *int) {
	if p == nil {
		writeField(h, "-")
		return
	}
	writeField(h, fmt.Sprintf("%d", *p))
}
