package models

import "time"

// OperationType enumerates the mutation kinds a client may submit.
type OperationType string

const (
	OperationCreate OperationType = "CREATE"
	OperationUpdate OperationType = "UPDATE"
	OperationDelete OperationType = "DELETE"
)

// Valid reports whether t is a recognized operation type.
func (t OperationType) Valid() bool {
	switch t {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	default:
		return false
	}
}

// SyncOperation is a single client-originated mutation intent. It is
// immutable once submitted; ID is a client-generated idempotency key that
// makes retried pushes safe.
type SyncOperation struct {
	// ID uniquely identifies the operation across retries. The server
	// records processed IDs and echoes the prior outcome on replay.
	ID string `json:"id"`

	EntityType EntityType    `json:"entityType"`
	EntityID   string        `json:"entityId"`
	Operation  OperationType `json:"operation"`

	// Data holds the field values for CREATE/UPDATE. Empty for DELETE.
	Data FieldMap `json:"data,omitempty"`

	// ClientVersion is the entity version the client believes is current.
	// Zero for CREATE.
	ClientVersion int64 `json:"clientVersion"`

	// Timestamp is the client wall-clock time of the edit, used by the
	// LAST_WRITE_WINS strategy.
	Timestamp time.Time `json:"timestamp"`

	// Checksum is an optional hex-encoded SHA-256 over the canonical
	// encoding of Data. Verified before the operation is applied.
	Checksum string `json:"checksum,omitempty"`
}

// Operation outcome statuses recorded in the idempotency store.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// OperationOutcome is the durable record of how one operation id was
// handled. A retried push with the same id is answered from this record
// without reapplying anything.
type OperationOutcome struct {
	Status string `json:"status"`

	// Reason carries the rejection reason code for rejected operations.
	Reason string `json:"reason,omitempty"`

	// Version is the entity version produced by an accepted operation.
	Version int64 `json:"version,omitempty"`

	// ConflictID references the conflict created by a rejected operation.
	ConflictID string `json:"conflictId,omitempty"`
}

// EntityKey identifies one versioned entity instance within a tenant.
type EntityKey struct {
	TenantID   string
	UserID     string
	EntityType EntityType
	EntityID   string
}

// EntityRecord is the server-side snapshot of one synchronized entity:
// its current version, current field values, and soft-delete flag.
type EntityRecord struct {
	Key       EntityKey
	Version   int64
	Fields    FieldMap
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
