package domain

import "fmt"

// StructureKind is the enumerated tag driving default timing fields and
// display metadata for a block.
type StructureKind string

const (
	StructureCircuit  StructureKind = "circuit"
	StructureRounds   StructureKind = "rounds"
	StructureEMOM     StructureKind = "emom"
	StructureAMRAP    StructureKind = "amrap"
	StructureTabata   StructureKind = "tabata"
	StructureForTime  StructureKind = "for-time"
	StructureSets     StructureKind = "sets"
	StructureRegular  StructureKind = "regular"
	StructureSuperset StructureKind = "superset"
	StructureWarmup   StructureKind = "warmup"
	StructureCooldown StructureKind = "cooldown"
)

// StructureMeta is the static per-kind metadata: display name and the timing
// defaults applied when the kind is assigned to a block.
type StructureMeta struct {
	DisplayName string

	Rounds               *int
	TimeCapSec           *int
	TimeWorkSec          *int
	TimeRestSec          *int
	RestBetweenRoundsSec *int
}

var structureMeta = map[StructureKind]StructureMeta{
	StructureCircuit: {
		DisplayName:          "Circuit",
		Rounds:               intDefault(3),
		RestBetweenRoundsSec: intDefault(60),
	},
	StructureRounds: {
		DisplayName:          "Rounds",
		Rounds:               intDefault(3),
		RestBetweenRoundsSec: intDefault(90),
	},
	StructureEMOM: {
		DisplayName: "EMOM",
		TimeCapSec:  intDefault(600),
		TimeWorkSec: intDefault(60),
	},
	StructureAMRAP: {
		DisplayName: "AMRAP",
		TimeCapSec:  intDefault(600),
	},
	StructureTabata: {
		DisplayName: "Tabata",
		Rounds:      intDefault(8),
		TimeWorkSec: intDefault(20),
		TimeRestSec: intDefault(10),
	},
	StructureForTime: {
		DisplayName: "For Time",
		TimeCapSec:  intDefault(900),
	},
	StructureSets: {
		DisplayName: "Sets",
	},
	StructureRegular: {
		DisplayName: "Regular",
	},
	StructureSuperset: {
		DisplayName: "Superset",
	},
	StructureWarmup: {
		DisplayName: "Warm-up",
		TimeCapSec:  intDefault(300),
	},
	StructureCooldown: {
		DisplayName: "Cool-down",
		TimeCapSec:  intDefault(300),
	},
}

// MetaFor looks up the metadata for a structure kind. The second return is
// false for unknown kinds.
func MetaFor(kind StructureKind) (StructureMeta, bool) {
	m, ok := structureMeta[kind]
	return m, ok
}

// ApplyDefaults copies the kind's timing defaults onto the block. Fields the
// kind has no default for are left untouched.
func (m StructureMeta) ApplyDefaults(b *Block) {
	if m.Rounds != nil {
		b.Rounds = intDefault(*m.Rounds)
	}
	if m.TimeCapSec != nil {
		b.TimeCapSec = intDefault(*m.TimeCapSec)
	}
	if m.TimeWorkSec != nil {
		b.TimeWorkSec = intDefault(*m.TimeWorkSec)
	}
	if m.TimeRestSec != nil {
		b.TimeRestSec = intDefault(*m.TimeRestSec)
	}
	if m.RestBetweenRoundsSec != nil {
		b.RestBetweenRoundsSec = intDefault(*m.RestBetweenRoundsSec)
	}
}

// KeyMetric formats the headline metric for a block, e.g. "3 rounds" for a
// circuit or "AMRAP 10:00" for an AMRAP. Returns "" for unconfigured blocks
// and kinds without a headline metric.
func KeyMetric(b *Block) string {
	if b.Structure == nil {
		return ""
	}
	switch *b.Structure {
	case StructureCircuit, StructureRounds:
		if b.Rounds != nil {
			return fmt.Sprintf("%d rounds", *b.Rounds)
		}
	case StructureEMOM:
		if b.TimeCapSec != nil {
			return fmt.Sprintf("EMOM %d min", *b.TimeCapSec/60)
		}
	case StructureAMRAP:
		if b.TimeCapSec != nil {
			return "AMRAP " + formatMinSec(*b.TimeCapSec)
		}
	case StructureTabata:
		if b.TimeWorkSec != nil && b.TimeRestSec != nil && b.Rounds != nil {
			return fmt.Sprintf("%ds/%ds x %d", *b.TimeWorkSec, *b.TimeRestSec, *b.Rounds)
		}
	case StructureForTime:
		if b.TimeCapSec != nil {
			return "cap " + formatMinSec(*b.TimeCapSec)
		}
	case StructureWarmup, StructureCooldown:
		if b.TimeCapSec != nil {
			return formatMinSec(*b.TimeCapSec)
		}
	}
	return ""
}

func formatMinSec(sec int) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

func intDefault(v int) *int {
	return &v
}
