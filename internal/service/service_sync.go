package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/store"
	"github.com/edusync/statesync/internal/utils"
	"github.com/edusync/statesync/models"
)

// rebaseAttempts bounds how many times a push operation is re-applied
// against a moved server version when its edits do not overlap the
// server-side changes.
const rebaseAttempts = 3

// syncService implements [SyncManager]: the push and pull halves of the
// sync protocol.
type syncService struct {
	entities     store.EntityRepository
	history      store.HistoryRepository
	conflicts    store.ConflictRepository
	processedOps store.ProcessedOpRepository
	notifiers    []Notifier
	uuid         *utils.UUIDGenerator
	config       *config.StructuredConfig
	logger       *logger.Logger
}

// NewSyncService constructs a [SyncManager]. Notifiers are invoked
// best-effort for every accepted operation and every created conflict.
func NewSyncService(storages *store.Storages, notifiers []Notifier, cfg *config.StructuredConfig, logger *logger.Logger) SyncManager {
	return &syncService{
		entities:     storages.Entities,
		history:      storages.History,
		conflicts:    storages.Conflicts,
		processedOps: storages.ProcessedOps,
		notifiers:    notifiers,
		uuid:         utils.NewUUIDGenerator(),
		config:       cfg,
		logger:       logger,
	}
}

// PushChanges applies a batch of client operations in order. Operations
// are independent: one rejection never aborts its siblings. Replayed
// operation ids are answered from the idempotency store without touching
// entity state.
func (s *syncService) PushChanges(ctx context.Context, auth models.AuthContext, req models.PushChangesRequest) (models.PushResult, error) {
	log := logger.FromContext(ctx)

	if len(req.Operations) > s.config.Sync.BatchSize {
		return models.PushResult{}, fmt.Errorf("%w: %d operations, limit %d",
			ErrBatchTooLarge, len(req.Operations), s.config.Sync.BatchSize)
	}

	result := models.PushResult{
		Conflicts:          []models.SyncConflict{},
		AcceptedOperations: []string{},
		RejectedOperations: []models.RejectedOperation{},
	}

	for _, op := range req.Operations {
		s.pushOne(ctx, auth, req.DeviceID, op, &result)
	}

	result.ProcessedCount = len(result.AcceptedOperations)
	result.FailedCount = len(result.RejectedOperations)
	result.Success = result.FailedCount == 0
	result.ServerTimestamp = time.Now().UTC()

	log.Info().
		Str("device_id", req.DeviceID).
		Int("accepted", result.ProcessedCount).
		Int("rejected", result.FailedCount).
		Msg("push batch processed")

	return result, nil
}

// pushOne routes a single operation through validation, idempotency
// replay, the compare-and-swap apply, and conflict handling, recording the
// outcome in result.
func (s *syncService) pushOne(ctx context.Context, auth models.AuthContext, deviceID string, op models.SyncOperation, result *models.PushResult) {
	log := logger.FromContext(ctx)

	if err := validateOperation(op); err != nil {
		reject(result, op.ID, models.ReasonValidation, "")
		return
	}
	if !utils.VerifyChecksum(op.Data, op.Checksum) {
		reject(result, op.ID, models.ReasonChecksumMismatch, "")
		return
	}

	outcome, seen, err := s.processedOps.GetOutcome(ctx, auth.TenantID, auth.UserID, op.ID)
	if err != nil {
		reject(result, op.ID, models.ReasonStorage, "")
		return
	}
	if seen {
		echoOutcome(result, op.ID, outcome)
		return
	}

	key := models.EntityKey{
		TenantID:   auth.TenantID,
		UserID:     auth.UserID,
		EntityType: op.EntityType,
		EntityID:   op.EntityID,
	}
	apply := store.ApplyRequest{
		Key:             key,
		DeviceID:        deviceID,
		OperationID:     op.ID,
		Operation:       op.Operation,
		Data:            op.Data,
		ExpectedVersion: op.ClientVersion,
	}

	record, err := s.entities.ApplyOperation(ctx, apply)
	switch {
	case err == nil:
		accept(result, op.ID)
		s.notify(ctx, key, op.Operation, record.Version, deviceID)

	case errors.Is(err, store.ErrVersionConflict), errors.Is(err, store.ErrEntityExists):
		s.handleDiverged(ctx, auth, deviceID, op, apply, record, result)

	case errors.Is(err, store.ErrEntityDeleted):
		reject(result, op.ID, models.ReasonEntityDeleted, "")

	case errors.Is(err, store.ErrEntityNotFound):
		reject(result, op.ID, models.ReasonNotFound, "")

	case errors.Is(err, store.ErrOperationAlreadyProcessed):
		// a concurrent retry committed first: echo its outcome
		if outcome, seen, err = s.processedOps.GetOutcome(ctx, auth.TenantID, auth.UserID, op.ID); err == nil && seen {
			echoOutcome(result, op.ID, outcome)
			return
		}
		reject(result, op.ID, models.ReasonStorage, "")

	default:
		log.Err(err).
			Str("operation_id", op.ID).
			Str("entity_type", string(op.EntityType)).
			Msg("push operation failed")
		reject(result, op.ID, models.ReasonStorage, "")
	}
}

// handleDiverged deals with an operation whose version expectation failed.
// If the client's edits do not overlap the fields changed server-side, the
// operation is rebased onto the current version and re-applied; otherwise
// a conflict record is created and the operation rejected.
func (s *syncService) handleDiverged(ctx context.Context, auth models.AuthContext, deviceID string, op models.SyncOperation, apply store.ApplyRequest, current models.EntityRecord, result *models.PushResult) {
	log := logger.FromContext(ctx)

	for attempt := 0; attempt < rebaseAttempts; attempt++ {
		serverChanged, err := s.history.FieldsChangedSince(ctx, apply.Key, op.ClientVersion)
		if err != nil {
			reject(result, op.ID, models.ReasonStorage, "")
			return
		}

		deltas := fieldDeltas(op.Data, current.Fields, serverChanged)
		conflicting := models.DeltaResult{FieldDeltas: deltas}.ConflictingFields()

		if len(conflicting) > 0 || op.Operation == models.OperationDelete {
			// deletes are never rebased: removing an entity the server
			// kept changing needs an explicit decision
			s.createConflict(ctx, auth, deviceID, op, current, conflicting, result)
			return
		}

		rebased := apply
		rebased.Operation = models.OperationUpdate
		rebased.ExpectedVersion = current.Version

		record, err := s.entities.ApplyOperation(ctx, rebased)
		switch {
		case err == nil:
			accept(result, op.ID)
			s.notify(ctx, apply.Key, models.OperationUpdate, record.Version, deviceID)
			return

		case errors.Is(err, store.ErrVersionConflict):
			// another device advanced the entity mid-rebase; re-evaluate
			current = record
			continue

		case errors.Is(err, store.ErrOperationAlreadyProcessed):
			if outcome, seen, getErr := s.processedOps.GetOutcome(ctx, auth.TenantID, auth.UserID, op.ID); getErr == nil && seen {
				echoOutcome(result, op.ID, outcome)
				return
			}
			reject(result, op.ID, models.ReasonStorage, "")
			return

		case errors.Is(err, store.ErrEntityDeleted):
			reject(result, op.ID, models.ReasonEntityDeleted, "")
			return

		default:
			log.Err(err).Str("operation_id", op.ID).Msg("rebase apply failed")
			reject(result, op.ID, models.ReasonStorage, "")
			return
		}
	}

	// the entity kept moving for every attempt; fall back to a conflict so
	// the client gets a durable record instead of a transient failure
	s.createConflict(ctx, auth, deviceID, op, current, nil, result)
}

// createConflict persists a PENDING conflict for a diverged operation,
// together with the rejected-outcome idempotency record, and rejects the
// operation with a reference to the conflict.
func (s *syncService) createConflict(ctx context.Context, auth models.AuthContext, deviceID string, op models.SyncOperation, current models.EntityRecord, conflicting []string, result *models.PushResult) {
	log := logger.FromContext(ctx)

	policy := models.PolicyFor(op.EntityType)
	conflict := models.SyncConflict{
		ID:                  s.uuid.Generate(),
		TenantID:            auth.TenantID,
		UserID:              auth.UserID,
		EntityType:          op.EntityType,
		EntityID:            op.EntityID,
		ClientData:          op.Data.Clone(),
		ServerData:          current.Fields.Clone(),
		ClientVersion:       op.ClientVersion,
		ServerVersion:       current.Version,
		ClientTimestamp:     op.Timestamp,
		ServerTimestamp:     current.UpdatedAt,
		ClientDeviceID:      deviceID,
		ConflictingFields:   conflicting,
		Status:              models.ConflictPending,
		SuggestedResolution: policy.DefaultResolution,
		CreatedAt:           time.Now().UTC(),
	}

	outcome := models.OperationOutcome{
		Status:     models.OutcomeRejected,
		Reason:     models.ReasonConflict,
		ConflictID: conflict.ID,
	}

	err := s.conflicts.CreateConflict(ctx, conflict, op.ID, outcome)
	switch {
	case err == nil:
		result.Conflicts = append(result.Conflicts, conflict)
		reject(result, op.ID, models.ReasonConflict, conflict.ID)
		for _, n := range s.notifiers {
			n.NotifyConflict(ctx, conflict)
		}

	case errors.Is(err, store.ErrOperationAlreadyProcessed):
		if prior, seen, getErr := s.processedOps.GetOutcome(ctx, auth.TenantID, auth.UserID, op.ID); getErr == nil && seen {
			echoOutcome(result, op.ID, prior)
			return
		}
		reject(result, op.ID, models.ReasonStorage, "")

	default:
		log.Err(err).Str("operation_id", op.ID).Msg("failed to persist conflict")
		reject(result, op.ID, models.ReasonStorage, "")
	}
}

// PullChanges returns the ordered change feed for a catching-up device.
// Repeating a pull with the returned cursor is always safe: the feed is
// append-only and ordered by (timestamp, version).
func (s *syncService) PullChanges(ctx context.Context, auth models.AuthContext, req models.PullChangesRequest) (models.PullResult, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.config.Sync.PullLimit
	}
	if limit > s.config.Sync.PullMaxLimit {
		limit = s.config.Sync.PullMaxLimit
	}

	query := store.ChangeQuery{
		TenantID:    auth.TenantID,
		UserID:      auth.UserID,
		EntityTypes: req.EntityTypes,
		Limit:       limit,
	}

	if req.Cursor != "" {
		cursor, err := parseCursor(req.Cursor)
		if err != nil {
			return models.PullResult{}, err
		}
		query.Cursor = &cursor
	} else if req.LastSyncTimestamp != nil {
		query.Since = req.LastSyncTimestamp.UTC()
	}

	changes, err := s.history.ListChanges(ctx, query)
	if err != nil {
		return models.PullResult{}, err
	}

	result := models.PullResult{
		Changes:         changes,
		Deletions:       []string{},
		ServerTimestamp: time.Now().UTC(),
	}

	if len(changes) > limit {
		result.Changes = changes[:limit]
		result.HasMore = true
		last := result.Changes[len(result.Changes)-1]
		result.NextCursor = formatCursor(last.Timestamp, last.Version)
	}
	if result.Changes == nil {
		result.Changes = []models.ServerChange{}
	}

	for _, change := range result.Changes {
		if change.Operation == models.OperationDelete {
			result.Deletions = append(result.Deletions, deletionRef(change))
		}
	}

	return result, nil
}

func (s *syncService) notify(ctx context.Context, key models.EntityKey, op models.OperationType, version int64, deviceID string) {
	notification := models.ChangeNotification{
		TenantID:   key.TenantID,
		UserID:     key.UserID,
		EntityType: key.EntityType,
		EntityID:   key.EntityID,
		Operation:  op,
		Version:    version,
		DeviceID:   deviceID,
	}
	for _, n := range s.notifiers {
		n.NotifyChange(ctx, notification)
	}
}

// validateOperation checks the structural invariants every operation must
// satisfy before it is allowed near the ledger.
func validateOperation(op models.SyncOperation) error {
	if op.ID == "" {
		return ErrEmptyOperationID
	}
	if !op.EntityType.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownEntityType, op.EntityType)
	}
	if op.EntityID == "" {
		return ErrEmptyEntityID
	}
	if !op.Operation.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownOperation, op.Operation)
	}
	if op.Operation != models.OperationDelete && len(op.Data) == 0 {
		return ErrEmptyData
	}
	return nil
}

func accept(result *models.PushResult, operationID string) {
	result.AcceptedOperations = append(result.AcceptedOperations, operationID)
}

func reject(result *models.PushResult, operationID, reason, conflictID string) {
	result.RejectedOperations = append(result.RejectedOperations, models.RejectedOperation{
		ID:         operationID,
		Reason:     reason,
		ConflictID: conflictID,
	})
}

// echoOutcome replays a stored idempotency outcome into the result, so a
// retried operation id observes exactly what the first attempt produced.
func echoOutcome(result *models.PushResult, operationID string, outcome models.OperationOutcome) {
	if outcome.Status == models.OutcomeAccepted {
		accept(result, operationID)
		return
	}
	reject(result, operationID, outcome.Reason, outcome.ConflictID)
}

// deletionRef renders a deletion entry as "entityType:entityId".
func deletionRef(change models.ServerChange) string {
	return string(change.EntityType) + ":" + change.EntityID
}

// formatCursor encodes a resume point as "<unixNanos>:<version>". The
// timestamp keeps full precision: history rows carry microsecond
// timestamps, and a truncated cursor would make the strict (ts, version)
// resume predicate match the last emitted row again.
func formatCursor(ts time.Time, version int64) string {
	return strconv.FormatInt(ts.UnixNano(), 10) + ":" + strconv.FormatInt(version, 10)
}

// parseCursor decodes a "<unixNanos>:<version>" cursor.
func parseCursor(raw string) (store.ChangeCursor, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return store.ChangeCursor{}, fmt.Errorf("%w: %q", ErrInvalidCursor, raw)
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return store.ChangeCursor{}, fmt.Errorf("%w: %q", ErrInvalidCursor, raw)
	}
	version, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return store.ChangeCursor{}, fmt.Errorf("%w: %q", ErrInvalidCursor, raw)
	}

	return store.ChangeCursor{
		Timestamp: time.Unix(0, nanos).UTC(),
		Version:   version,
	}, nil
}
