package store

import (
	"context"
	"time"

	"github.com/edusync/statesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implemented by [PostgresErrorClassifier].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ApplyRequest carries everything needed to apply one client operation to
// an entity atomically: the CAS expectation, the mutation itself, and the
// idempotency record written in the same transaction.
type ApplyRequest struct {
	Key      models.EntityKey
	DeviceID string

	// OperationID is the client idempotency key recorded in
	// processed_operations together with the entity write.
	OperationID string

	Operation models.OperationType

	// Data holds the fields to write for CREATE/UPDATE; for UPDATE they
	// are overlaid on the current snapshot. Ignored for DELETE.
	Data models.FieldMap

	// ExpectedVersion is the CAS guard for UPDATE/DELETE: the apply
	// succeeds only if it equals the current server version. Ignored for
	// CREATE.
	ExpectedVersion int64
}

// ResolutionApply carries a conflict-resolution write: the full resolved
// field set for the entity plus the conflict status transition, committed
// in one transaction so resolution can never half-happen.
type ResolutionApply struct {
	Key        models.EntityKey
	ConflictID string
	ResolvedBy string

	// Fields is the complete post-resolution snapshot for the entity.
	Fields models.FieldMap

	// ChangedData is the subset recorded in sync history (what actually
	// changed relative to the server snapshot).
	ChangedData models.FieldMap

	// Residual lists conflicting fields that remain unresolved. When
	// non-empty, the conflict stays PENDING, rescoped to those fields and
	// re-suggested as MANUAL, while the partial merge is still applied.
	Residual []string
}

// ChangeQuery selects a page of sync history for the Pull path.
type ChangeQuery struct {
	TenantID string
	UserID   string

	// EntityTypes filters the result; empty means all types.
	EntityTypes []models.EntityType

	// Since selects changes with timestamp strictly greater. Zero means
	// the full history.
	Since time.Time

	// Cursor resumes after a (timestamp, version) pair from a previous
	// truncated page. When set, it supersedes Since.
	Cursor *ChangeCursor

	// Limit caps the page size; the repository fetches one extra row so
	// the caller can detect truncation.
	Limit int
}

// ChangeCursor is the decoded (timestamp, version) resume point of a pull.
type ChangeCursor struct {
	Timestamp time.Time
	Version   int64
}

// EntityRepository owns the versioned entity snapshots and the version
// ledger. All mutations go through ApplyOperation/ApplyResolution, which
// serialize concurrent writers per entity with a row lock.
type EntityRepository interface {
	// GetEntity returns the current snapshot, or ErrEntityNotFound.
	GetEntity(ctx context.Context, key models.EntityKey) (models.EntityRecord, error)

	// ApplyOperation performs the compare-and-swap apply: row lock,
	// version check, entity write, history append, and idempotency record
	// in one transaction. On ErrVersionConflict and ErrEntityDeleted the
	// returned record is the current authoritative server state.
	ApplyOperation(ctx context.Context, req ApplyRequest) (models.EntityRecord, error)

	// ApplyResolution writes a resolved field set, bumps the version,
	// appends history, and transitions the conflict record — atomically.
	// Returns ErrConflictAlreadyResolved if the conflict left PENDING
	// status concurrently.
	ApplyResolution(ctx context.Context, req ResolutionApply) (models.EntityRecord, error)
}

// HistoryRepository reads and prunes the append-only sync history.
type HistoryRepository interface {
	// ListChanges returns history entries matching q ordered by ascending
	// (timestamp, version).
	ListChanges(ctx context.Context, q ChangeQuery) ([]models.ServerChange, error)

	// FieldsChangedSince returns the set of field names changed on the
	// server for one entity after the given version. This is the ancestor
	// information the delta computer needs to separate client-only edits
	// from true conflicts.
	FieldsChangedSince(ctx context.Context, key models.EntityKey, sinceVersion int64) (map[string]struct{}, error)

	// PurgeOlderThan deletes history entries with timestamp before cutoff
	// and returns the number of rows removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ConflictRepository owns SyncConflict records.
type ConflictRepository interface {
	// CreateConflict inserts a PENDING conflict and, in the same
	// transaction, the idempotency record for the rejected operation.
	CreateConflict(ctx context.Context, conflict models.SyncConflict, operationID string, outcome models.OperationOutcome) error

	// GetConflict returns a conflict by id scoped to a tenant, or
	// ErrConflictNotFound.
	GetConflict(ctx context.Context, tenantID, conflictID string) (models.SyncConflict, error)

	// ListPendingConflicts returns up to limit PENDING conflicts for one
	// user, oldest first.
	ListPendingConflicts(ctx context.Context, tenantID, userID string, limit int) ([]models.SyncConflict, error)

	// ListAutoResolvable returns up to limit PENDING conflicts whose
	// suggested resolution is not MANUAL, oldest first, across all
	// tenants. Used by the auto-resolve sweep.
	ListAutoResolvable(ctx context.Context, limit int) ([]models.SyncConflict, error)

	// MarkResolved transitions a PENDING conflict to a terminal status.
	// Returns ErrConflictAlreadyResolved if the conflict is no longer
	// PENDING.
	MarkResolved(ctx context.Context, conflictID string, status models.ConflictStatus, resolvedBy string) error

	// PurgeOlderThan deletes conflicts created before cutoff and returns
	// the number of rows removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ProcessedOpRepository reads the idempotency records written by the
// entity and conflict repositories.
type ProcessedOpRepository interface {
	// GetOutcome returns the stored outcome for an operation id, with a
	// found flag.
	GetOutcome(ctx context.Context, tenantID, userID, operationID string) (models.OperationOutcome, bool, error)

	// PurgeOlderThan deletes idempotency records processed before cutoff
	// and returns the number of rows removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
