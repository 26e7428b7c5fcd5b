package models

import "time"

// Rejection reason codes returned per operation in a PushResult. Clients
// must treat these as actionable rather than silent loss.
const (
	ReasonConflict         = "conflict"
	ReasonValidation       = "validation"
	ReasonEntityDeleted    = "entity_deleted"
	ReasonNotFound         = "not_found"
	ReasonChecksumMismatch = "checksum_mismatch"
	ReasonStorage          = "storage"
)

// PushChangesRequest is the body of POST /api/sync/push.
type PushChangesRequest struct {
	DeviceID          string          `json:"deviceId"`
	LastSyncTimestamp *time.Time      `json:"lastSyncTimestamp,omitempty"`
	Operations        []SyncOperation `json:"operations"`
}

// RejectedOperation pairs a rejected operation ID with its reason code.
type RejectedOperation struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`

	// ConflictID references the SyncConflict created for reason
	// "conflict", so the client can drive manual resolution.
	ConflictID string `json:"conflictId,omitempty"`
}

// PushResult reports the per-operation outcome of one push batch. A single
// failed operation never aborts its siblings.
type PushResult struct {
	Success            bool                `json:"success"`
	ProcessedCount     int                 `json:"processedCount"`
	FailedCount        int                 `json:"failedCount"`
	Conflicts          []SyncConflict      `json:"conflicts"`
	AcceptedOperations []string            `json:"acceptedOperations"`
	RejectedOperations []RejectedOperation `json:"rejectedOperations"`
	ServerTimestamp    time.Time           `json:"serverTimestamp"`
}

// PullChangesRequest is the body of POST /api/sync/pull.
type PullChangesRequest struct {
	DeviceID          string       `json:"deviceId"`
	LastSyncTimestamp *time.Time   `json:"lastSyncTimestamp,omitempty"`
	EntityTypes       []EntityType `json:"entityTypes,omitempty"`

	// Cursor resumes a truncated pull; it supersedes LastSyncTimestamp
	// when both are present.
	Cursor string `json:"cursor,omitempty"`

	// Limit caps the number of changes returned (default 100, max 500).
	Limit int `json:"limit,omitempty"`
}

// PullResult is the ordered change feed for a catching-up device.
// Deletions are surfaced separately so clients can drop local copies
// without interpreting full change semantics.
type PullResult struct {
	Changes         []ServerChange `json:"changes"`
	Deletions       []string       `json:"deletions"`
	HasMore         bool           `json:"hasMore"`
	NextCursor      string         `json:"nextCursor,omitempty"`
	ServerTimestamp time.Time      `json:"serverTimestamp"`
}

// DeltaRequest is the body of POST /api/sync/delta — a read-only probe for
// conflicts before committing a full push.
type DeltaRequest struct {
	DeviceID      string     `json:"deviceId"`
	EntityType    EntityType `json:"entityType"`
	EntityID      string     `json:"entityId"`
	ClientVersion int64      `json:"clientVersion"`
	ClientFields  FieldMap   `json:"clientFields"`
}

// ConflictResolutionRequest is the body of
// POST /api/sync/conflicts/{id}/resolve.
type ConflictResolutionRequest struct {
	Resolution ResolutionStrategy `json:"resolution"`

	// MergedData is required for MANUAL resolution and must cover every
	// conflicting field of the target conflict.
	MergedData FieldMap `json:"mergedData,omitempty"`
}

// ConflictListResult is the response of GET /api/sync/conflicts.
type ConflictListResult struct {
	Conflicts []SyncConflict `json:"conflicts"`
	Length    int            `json:"length"`
}
