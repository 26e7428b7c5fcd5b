package models

// EntityType identifies which logical collection of synchronized state a
// record or operation targets. The set is closed: operations naming any
// other value are rejected at validation time.
type EntityType string

const (
	EntityTypeSession      EntityType = "session"
	EntityTypeResponse     EntityType = "response"
	EntityTypeProgress     EntityType = "progress"
	EntityTypeSkillMastery EntityType = "skill-mastery"
	EntityTypeSettings     EntityType = "settings"
	EntityTypeBookmark     EntityType = "bookmark"
	EntityTypeNote         EntityType = "note"
)

// AllEntityTypes returns every recognized entity type.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeSession,
		EntityTypeResponse,
		EntityTypeProgress,
		EntityTypeSkillMastery,
		EntityTypeSettings,
		EntityTypeBookmark,
		EntityTypeNote,
	}
}

// Valid reports whether t is a member of the closed entity-type set.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeSession, EntityTypeResponse, EntityTypeProgress,
		EntityTypeSkillMastery, EntityTypeSettings, EntityTypeBookmark,
		EntityTypeNote:
		return true
	default:
		return false
	}
}

func (t EntityType) String() string {
	return string(t)
}

// SyncPolicy captures the per-entity-type business rules consulted when a
// conflict is created and when the auto-resolve sweep runs.
type SyncPolicy struct {
	// DefaultResolution is the suggestedResolution recorded on a freshly
	// detected conflict for this entity type.
	DefaultResolution ResolutionStrategy

	// AutoResolve permits the maintenance sweep to resolve pending
	// conflicts of this type without human involvement.
	AutoResolve bool
}

// entityPolicies is the business-rule table for conflict handling.
// Assessment data (responses, skill mastery) is never auto-resolved:
// silently discarding either side of a diverged answer would corrupt
// mastery calculations downstream.
var entityPolicies = map[EntityType]SyncPolicy{
	EntityTypeSession:      {DefaultResolution: ResolutionLastWriteWins, AutoResolve: true},
	EntityTypeResponse:     {DefaultResolution: ResolutionManual, AutoResolve: false},
	EntityTypeProgress:     {DefaultResolution: ResolutionLastWriteWins, AutoResolve: true},
	EntityTypeSkillMastery: {DefaultResolution: ResolutionManual, AutoResolve: false},
	EntityTypeSettings:     {DefaultResolution: ResolutionLastWriteWins, AutoResolve: true},
	EntityTypeBookmark:     {DefaultResolution: ResolutionLastWriteWins, AutoResolve: true},
	EntityTypeNote:         {DefaultResolution: ResolutionLastWriteWins, AutoResolve: true},
}

// PolicyFor returns the sync policy for the given entity type. Unknown
// types fall back to a manual-only policy so nothing is resolved silently.
func PolicyFor(t EntityType) SyncPolicy {
	if p, ok := entityPolicies[t]; ok {
		return p
	}
	return SyncPolicy{DefaultResolution: ResolutionManual, AutoResolve: false}
}
