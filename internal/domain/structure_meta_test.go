package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindPtr(k StructureKind) *StructureKind { return &k }
func ip(v int) *int                          { return &v }

func TestMetaFor_AllKindsKnown(t *testing.T) {
	kinds := []StructureKind{
		StructureCircuit, StructureRounds, StructureEMOM, StructureAMRAP,
		StructureTabata, StructureForTime, StructureSets, StructureRegular,
		StructureSuperset, StructureWarmup, StructureCooldown,
	}
	for _, k := range kinds {
		m, ok := MetaFor(k)
		require.True(t, ok, "kind %q", k)
		assert.NotEmpty(t, m.DisplayName, "kind %q", k)
	}

	_, ok := MetaFor("pyramid")
	assert.False(t, ok)
}

func TestApplyDefaults(t *testing.T) {
	m, _ := MetaFor(StructureTabata)
	b := &Block{}
	m.ApplyDefaults(b)
	assert.Equal(t, 8, *b.Rounds)
	assert.Equal(t, 20, *b.TimeWorkSec)
	assert.Equal(t, 10, *b.TimeRestSec)
	assert.Nil(t, b.TimeCapSec, "no default for the kind leaves the field alone")
}

func TestKeyMetric(t *testing.T) {
	tests := []struct {
		name  string
		block *Block
		want  string
	}{
		{"unconfigured", &Block{}, ""},
		{"circuit", &Block{Structure: kindPtr(StructureCircuit), Rounds: ip(3)}, "3 rounds"},
		{"emom", &Block{Structure: kindPtr(StructureEMOM), TimeCapSec: ip(720)}, "EMOM 12 min"},
		{"amrap", &Block{Structure: kindPtr(StructureAMRAP), TimeCapSec: ip(600)}, "AMRAP 10:00"},
		{"tabata", &Block{Structure: kindPtr(StructureTabata), Rounds: ip(8), TimeWorkSec: ip(20), TimeRestSec: ip(10)}, "20s/10s x 8"},
		{"for-time", &Block{Structure: kindPtr(StructureForTime), TimeCapSec: ip(930)}, "cap 15:30"},
		{"warmup", &Block{Structure: kindPtr(StructureWarmup), TimeCapSec: ip(300)}, "5:00"},
		{"sets has no headline", &Block{Structure: kindPtr(StructureSets)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyMetric(tt.block))
		})
	}
}

func TestBlockJSON_SparseHoleAndNullStructure(t *testing.T) {
	b := &Block{
		ID:        "b1",
		Label:     "Finisher",
		Exercises: []*Exercise{nil, {ID: "e1", Name: "Row"}},
	}
	raw, err := json.Marshal(b)
	require.NoError(t, err)

	// The reserved hole must survive the round trip as null, and an
	// unconfigured structure marshals as null, not "".
	assert.Contains(t, string(raw), `"exercises":[null,{`)
	assert.Contains(t, string(raw), `"structure":null`)

	var back Block
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back.Exercises, 2)
	assert.Nil(t, back.Exercises[0])
	assert.Equal(t, "Row", back.Exercises[1].Name)
	assert.Nil(t, back.Structure)
}
