package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityType_Valid(t *testing.T) {
	for _, entityType := range AllEntityTypes() {
		assert.True(t, entityType.Valid(), "expected %s to be valid", entityType)
	}

	assert.False(t, EntityType("homework").Valid())
	assert.False(t, EntityType("").Valid())
}

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		entityType      EntityType
		wantResolution  ResolutionStrategy
		wantAutoResolve bool
	}{
		{EntityTypeSession, ResolutionLastWriteWins, true},
		{EntityTypeProgress, ResolutionLastWriteWins, true},
		{EntityTypeSettings, ResolutionLastWriteWins, true},
		{EntityTypeBookmark, ResolutionLastWriteWins, true},
		{EntityTypeNote, ResolutionLastWriteWins, true},

		// assessment data must never be resolved silently
		{EntityTypeResponse, ResolutionManual, false},
		{EntityTypeSkillMastery, ResolutionManual, false},

		// unknown types fall back to manual-only
		{EntityType("homework"), ResolutionManual, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.entityType), func(t *testing.T) {
			policy := PolicyFor(tt.entityType)
			assert.Equal(t, tt.wantResolution, policy.DefaultResolution)
			assert.Equal(t, tt.wantAutoResolve, policy.AutoResolve)
		})
	}
}

func TestConflictStatus_Terminal(t *testing.T) {
	assert.False(t, ConflictPending.Terminal())
	assert.True(t, ConflictResolved.Terminal())
	assert.True(t, ConflictRejected.Terminal())
}

func TestResolutionStrategy_Valid(t *testing.T) {
	valid := []ResolutionStrategy{
		ResolutionServerWins, ResolutionClientWins,
		ResolutionLastWriteWins, ResolutionMerge, ResolutionManual,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, ResolutionStrategy("COIN_FLIP").Valid())
}
