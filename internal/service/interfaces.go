package service

import (
	"context"

	"github.com/edusync/statesync/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/service_mock.go -package=mocks

// Notifier receives best-effort notifications about accepted changes and
// freshly detected conflicts. Implementations must never block the sync
// path; delivery failures are the implementation's problem, not the
// caller's.
type Notifier interface {
	NotifyChange(ctx context.Context, notification models.ChangeNotification)
	NotifyConflict(ctx context.Context, conflict models.SyncConflict)
}

// SyncManager is the push/pull surface of the sync protocol.
type SyncManager interface {
	// PushChanges applies a batch of client operations. Each operation
	// succeeds or fails independently; the result reports per-operation
	// outcomes and any conflicts created.
	PushChanges(ctx context.Context, auth models.AuthContext, req models.PushChangesRequest) (models.PushResult, error)

	// PullChanges returns the ordered change feed for a catching-up
	// device, paged by an opaque cursor.
	PullChanges(ctx context.Context, auth models.AuthContext, req models.PullChangesRequest) (models.PullResult, error)
}

// DeltaManager computes read-only field-level comparisons.
type DeltaManager interface {
	// ComputeDelta compares a client's believed entity state against the
	// current server state without modifying anything.
	ComputeDelta(ctx context.Context, auth models.AuthContext, req models.DeltaRequest) (models.DeltaResult, error)
}

// ConflictManager is the conflict inspection and resolution surface.
type ConflictManager interface {
	// ListConflicts returns the caller's pending conflicts, oldest first.
	ListConflicts(ctx context.Context, auth models.AuthContext) (models.ConflictListResult, error)

	// ResolveConflict applies a resolution strategy to one pending
	// conflict and returns its updated record.
	ResolveConflict(ctx context.Context, auth models.AuthContext, conflictID string, req models.ConflictResolutionRequest) (models.SyncConflict, error)
}

// CleanupStats reports what one retention cleanup pass removed.
type CleanupStats struct {
	ConflictsPurged    int64
	HistoryPurged      int64
	ProcessedOpsPurged int64
}

// SweepStats reports the outcome of one auto-resolve pass.
type SweepStats struct {
	Resolved int
	Skipped  int
	Failed   int
}

// MaintenanceManager runs the periodic background jobs.
type MaintenanceManager interface {
	// CleanupExpired purges conflicts, history, and idempotency records
	// older than their configured retention windows.
	CleanupExpired(ctx context.Context) (CleanupStats, error)

	// AutoResolveSweep resolves pending conflicts whose entity-type policy
	// permits automatic resolution, honoring each conflict's suggested
	// strategy.
	AutoResolveSweep(ctx context.Context) (SweepStats, error)
}
