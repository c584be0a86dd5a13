package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is the persisted aggregate: one owner, one editable structure tree.
// The Structure field is exchanged verbatim (as JSON) with the external
// generation, mapping and export services.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Structure WorkoutStructure   `bson:"structure" json:"structure"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutStructure is the root of the editable workout tree.
// Block order is the display/execution order and is preserved by every
// mutation except the explicit reorder operations.
type WorkoutStructure struct {
	Title    string           `bson:"title" json:"title"`
	Source   string           `bson:"source" json:"source"`
	Settings *WorkoutSettings `bson:"settings,omitempty" json:"settings,omitempty"`
	Blocks   []*Block         `bson:"blocks" json:"blocks"`

	// Classification metadata produced by the generation service.
	// Consumed, never computed, on this side.
	WorkoutType           string   `bson:"workout_type,omitempty" json:"workout_type,omitempty"`
	WorkoutTypeConfidence *float64 `bson:"workout_type_confidence,omitempty" json:"workout_type_confidence,omitempty"`
}

// WorkoutSettings holds workout-wide defaults.
type WorkoutSettings struct {
	DefaultRestType string `bson:"default_rest_type,omitempty" json:"default_rest_type,omitempty"`
	DefaultRestSec  *int   `bson:"default_rest_sec,omitempty" json:"default_rest_sec,omitempty"`

	// WorkoutWarmup is a deprecated flag from older payloads. It is migrated
	// into an explicit warmup Block the first time the workout is loaded and
	// cleared afterwards. The camelCase key is the historical wire name.
	WorkoutWarmup *LegacyWarmup `bson:"workoutWarmup,omitempty" json:"workoutWarmup,omitempty"`
}

// LegacyWarmup is the deprecated pre-block warmup configuration.
type LegacyWarmup struct {
	Enabled     bool `bson:"enabled" json:"enabled"`
	DurationSec *int `bson:"duration_sec,omitempty" json:"duration_sec,omitempty"`
}

// Block is a named segment of the workout (e.g. "Warm-up", "Main Circuit").
//
// Exercises may be sparse: when a block contains supersets, index 0 is
// reserved so that a standalone exercise rendered before the supersets can
// occupy it, while indices >= 1 render after them. A nil element is the
// reserved hole (it marshals as JSON null, matching the wire shape the
// external services expect).
type Block struct {
	ID        string         `bson:"id" json:"id"`
	Label     string         `bson:"label" json:"label"`
	Structure *StructureKind `bson:"structure" json:"structure"` // nil = unconfigured, generic block
	Exercises []*Exercise    `bson:"exercises" json:"exercises"`
	Supersets []*Superset    `bson:"supersets,omitempty" json:"supersets,omitempty"`

	// Structure-specific timing fields, populated from the per-structure
	// defaults when a structure kind is assigned.
	Rounds               *int `bson:"rounds,omitempty" json:"rounds,omitempty"`
	TimeCapSec           *int `bson:"time_cap_sec,omitempty" json:"time_cap_sec,omitempty"`
	TimeWorkSec          *int `bson:"time_work_sec,omitempty" json:"time_work_sec,omitempty"`
	TimeRestSec          *int `bson:"time_rest_sec,omitempty" json:"time_rest_sec,omitempty"`
	RestBetweenRoundsSec *int `bson:"rest_between_rounds_sec,omitempty" json:"rest_between_rounds_sec,omitempty"`

	RestOverride *RestOverride `bson:"rest_override,omitempty" json:"rest_override,omitempty"`
}

// RestOverride is a block-level rest override. When disabled, rest is
// inherited from WorkoutSettings.
type RestOverride struct {
	Enabled  bool   `bson:"enabled" json:"enabled"`
	RestType string `bson:"rest_type,omitempty" json:"rest_type,omitempty"`
	RestSec  *int   `bson:"rest_sec,omitempty" json:"rest_sec,omitempty"`
}

// Superset is a group of exercises executed back-to-back with a single rest
// period after the whole group. Its exercise list is never sparse.
type Superset struct {
	ID             string      `bson:"id" json:"id"`
	Exercises      []*Exercise `bson:"exercises" json:"exercises"`
	Rounds         *int        `bson:"rounds,omitempty" json:"rounds,omitempty"`
	RestBetweenSec *int        `bson:"rest_between_sec,omitempty" json:"rest_between_sec,omitempty"`
	RestType       string      `bson:"rest_type,omitempty" json:"rest_type,omitempty"`
}

// Exercise is the leaf unit of work.
//
// Reps and RepsRange are mutually exclusive, as are DistanceM and
// DistanceRange. The mutation layer clears the counterpart whenever one of
// them is set.
type Exercise struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Type string `bson:"type,omitempty" json:"type,omitempty"` // category tag, e.g. "strength", "cardio"

	Sets      *int       `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps      *int       `bson:"reps,omitempty" json:"reps,omitempty"`
	RepsRange *RepsRange `bson:"reps_range,omitempty" json:"reps_range,omitempty"`

	DurationSec   *int           `bson:"duration_sec,omitempty" json:"duration_sec,omitempty"`
	DistanceM     *float64       `bson:"distance_m,omitempty" json:"distance_m,omitempty"`
	DistanceRange *DistanceRange `bson:"distance_range,omitempty" json:"distance_range,omitempty"`

	RestSec  *int   `bson:"rest_sec,omitempty" json:"rest_sec,omitempty"`
	RestType string `bson:"rest_type,omitempty" json:"rest_type,omitempty"`

	WarmupSets *int `bson:"warmup_sets,omitempty" json:"warmup_sets,omitempty"`
	WarmupReps *int `bson:"warmup_reps,omitempty" json:"warmup_reps,omitempty"`

	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// RepsRange is an inclusive rep range, e.g. 8-12.
type RepsRange struct {
	Min int `bson:"min" json:"min"`
	Max int `bson:"max" json:"max"`
}

// DistanceRange is an inclusive distance range in meters.
type DistanceRange struct {
	MinM float64 `bson:"min_m" json:"min_m"`
	MaxM float64 `bson:"max_m" json:"max_m"`
}

// HasBlockExercises reports whether the block carries at least one real
// (non-hole) block-level exercise.
func (b *Block) HasBlockExercises() bool {
	for _, ex := range b.Exercises {
		if ex != nil {
			return true
		}
	}
	return false
}

// HasStructure reports whether the block is configured with the given kind.
func (b *Block) HasStructure(kind StructureKind) bool {
	return b.Structure != nil && *b.Structure == kind
}
