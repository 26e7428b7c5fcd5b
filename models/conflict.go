package models

import "time"

// ConflictStatus is the lifecycle state of a SyncConflict. PENDING is the
// only non-terminal state.
type ConflictStatus string

const (
	ConflictPending  ConflictStatus = "PENDING"
	ConflictResolved ConflictStatus = "RESOLVED"
	ConflictRejected ConflictStatus = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s ConflictStatus) Terminal() bool {
	return s == ConflictResolved || s == ConflictRejected
}

// ResolutionStrategy names the policy applied to a detected conflict.
type ResolutionStrategy string

const (
	ResolutionServerWins    ResolutionStrategy = "SERVER_WINS"
	ResolutionClientWins    ResolutionStrategy = "CLIENT_WINS"
	ResolutionLastWriteWins ResolutionStrategy = "LAST_WRITE_WINS"
	ResolutionMerge         ResolutionStrategy = "MERGE"
	ResolutionManual        ResolutionStrategy = "MANUAL"
)

// Valid reports whether s is a recognized strategy.
func (s ResolutionStrategy) Valid() bool {
	switch s {
	case ResolutionServerWins, ResolutionClientWins, ResolutionLastWriteWins,
		ResolutionMerge, ResolutionManual:
		return true
	default:
		return false
	}
}

// SyncConflict records a push that could not be applied because the
// client's believed version diverged from the server's, together with
// everything a resolution strategy needs: both field sets, both versions,
// both timestamps, and the exact set of fields in contention.
type SyncConflict struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenantId"`
	UserID     string     `json:"userId"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`

	ClientData FieldMap `json:"clientData"`
	ServerData FieldMap `json:"serverData"`

	ClientVersion int64 `json:"clientVersion"`
	ServerVersion int64 `json:"serverVersion"`

	// ClientTimestamp is the wall-clock time of the client edit;
	// ServerTimestamp is the time of the server-side change it collided
	// with. LAST_WRITE_WINS compares the two.
	ClientTimestamp time.Time `json:"clientTimestamp"`
	ServerTimestamp time.Time `json:"serverTimestamp"`

	// ClientDeviceID identifies the device whose push was rejected.
	ClientDeviceID string `json:"clientDeviceId"`

	// ConflictingFields lists the fields both sides changed to different
	// values. MERGE resolves everything outside this set; MANUAL must
	// cover all of it.
	ConflictingFields []string `json:"conflictingFields"`

	Status ConflictStatus `json:"status"`

	// SuggestedResolution is the strategy the entity type's policy
	// recommends; the auto-resolve sweep honors it.
	SuggestedResolution ResolutionStrategy `json:"suggestedResolution"`

	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
}
