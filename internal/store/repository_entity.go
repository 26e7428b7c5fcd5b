package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
	"github.com/jackc/pgerrcode"
)

// entityRepository is the PostgreSQL-backed implementation of
// [EntityRepository]. It owns the "entities" table — the version ledger and
// current snapshots — and performs every mutation inside a single
// transaction together with the history append and the idempotency record,
// so the ledger and the entity state can never diverge.
type entityRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityRepository constructs an [EntityRepository] backed by the
// provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

// GetEntity retrieves the current snapshot of one entity.
//
// Returns ErrEntityNotFound when no row exists for the key.
func (r *entityRepository) GetEntity(ctx context.Context, key models.EntityKey) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getEntity,
		key.TenantID, key.UserID, string(key.EntityType), key.EntityID)

	record, err := scanEntityRecord(row, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityRecord{}, ErrEntityNotFound
		}

		log.Err(err).
			Str("func", "entityRepository.GetEntity").
			Str("entity_type", string(key.EntityType)).
			Str("entity_id", key.EntityID).
			Msg("failed to read entity snapshot")
		return models.EntityRecord{}, wrapDBError(ErrScanningRow, err)
	}

	return record, nil
}

// ApplyOperation applies one client operation with full per-operation
// atomicity: the row lock serializes concurrent devices writing the same
// entity, the version check implements the compare-and-swap, and the
// entity write, history append, and processed-operation record commit
// together or not at all.
//
// On ErrVersionConflict, ErrEntityDeleted, and ErrEntityExists the
// returned record carries the current authoritative server state so the
// caller can construct a conflict without a second read.
func (r *entityRepository) ApplyOperation(ctx context.Context, req ApplyRequest) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("error during opening transaction")
		return models.EntityRecord{}, wrapDBError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	current, found, err := lockEntity(ctx, tx, req.Key)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("error locking entity row")
		return models.EntityRecord{}, err
	}

	var next models.EntityRecord

	switch req.Operation {
	case models.OperationCreate:
		if found && current.Deleted {
			return current, ErrEntityDeleted
		}
		if found {
			return current, ErrEntityExists
		}

		next = models.EntityRecord{
			Key:       req.Key,
			Version:   1,
			Fields:    req.Data.Clone(),
			CreatedAt: now,
			UpdatedAt: now,
		}

		fieldsJSON, marshalErr := marshalFieldMap(next.Fields)
		if marshalErr != nil {
			return models.EntityRecord{}, marshalErr
		}

		if _, err = tx.ExecContext(ctx, insertEntity,
			req.Key.TenantID, req.Key.UserID, string(req.Key.EntityType), req.Key.EntityID,
			next.Version, fieldsJSON, false, now); err != nil {
			log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("error inserting entity")
			return models.EntityRecord{}, wrapDBError(ErrExecutingStatement, err)
		}

	case models.OperationUpdate:
		if !found {
			return models.EntityRecord{}, ErrEntityNotFound
		}
		if current.Deleted {
			return current, ErrEntityDeleted
		}
		if current.Version != req.ExpectedVersion {
			return current, ErrVersionConflict
		}

		next = current
		next.Version = current.Version + 1
		next.Fields = current.Fields.Merge(req.Data)
		next.UpdatedAt = now

		if err = r.writeEntity(ctx, tx, next); err != nil {
			return models.EntityRecord{}, err
		}

	case models.OperationDelete:
		if !found {
			return models.EntityRecord{}, ErrEntityNotFound
		}
		if current.Deleted {
			return current, ErrEntityDeleted
		}
		if current.Version != req.ExpectedVersion {
			return current, ErrVersionConflict
		}

		next = current
		next.Version = current.Version + 1
		next.Deleted = true
		next.UpdatedAt = now

		if err = r.writeEntity(ctx, tx, next); err != nil {
			return models.EntityRecord{}, err
		}

	default:
		return models.EntityRecord{}, fmt.Errorf("unsupported operation type: %s", req.Operation)
	}

	historyData := req.Data
	if req.Operation == models.OperationDelete {
		historyData = nil
	}
	if err = appendHistory(ctx, tx, req.Key, req.Operation, historyData, next.Version, req.DeviceID, now); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("error appending sync history")
		return models.EntityRecord{}, err
	}

	outcome := models.OperationOutcome{Status: models.OutcomeAccepted, Version: next.Version}
	if err = recordProcessedOperation(ctx, tx, req.Key, req.OperationID, outcome, now); err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			// a concurrent retry of the same operation id committed first
			return models.EntityRecord{}, ErrOperationAlreadyProcessed
		}
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("error recording processed operation")
		return models.EntityRecord{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyOperation").Msg("error committing transaction")
		return models.EntityRecord{}, wrapDBError(ErrCommitingTransaction, err)
	}

	return next, nil
}

// ApplyResolution writes the resolved snapshot and transitions the
// conflict record in one transaction. The PENDING-status guard on the
// conflict update makes double resolution (manual flow racing the sweep)
// impossible: the loser observes ErrConflictAlreadyResolved and nothing is
// written.
func (r *entityRepository) ApplyResolution(ctx context.Context, req ResolutionApply) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyResolution").Msg("error during opening transaction")
		return models.EntityRecord{}, wrapDBError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	current, found, err := lockEntity(ctx, tx, req.Key)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyResolution").Msg("error locking entity row")
		return models.EntityRecord{}, err
	}
	if !found {
		return models.EntityRecord{}, ErrEntityNotFound
	}

	next := current
	next.Version = current.Version + 1
	next.Fields = req.Fields.Clone()
	next.UpdatedAt = now

	if err = r.writeEntity(ctx, tx, next); err != nil {
		return models.EntityRecord{}, err
	}

	if err = appendHistory(ctx, tx, req.Key, models.OperationUpdate, req.ChangedData, next.Version, "", now); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyResolution").Msg("error appending sync history")
		return models.EntityRecord{}, err
	}

	var result sql.Result
	if len(req.Residual) > 0 {
		residualJSON, marshalErr := marshalStrings(req.Residual)
		if marshalErr != nil {
			return models.EntityRecord{}, marshalErr
		}
		fieldsJSON, marshalErr := marshalFieldMap(next.Fields)
		if marshalErr != nil {
			return models.EntityRecord{}, marshalErr
		}

		result, err = tx.ExecContext(ctx, rescopeConflict,
			req.ConflictID, residualJSON, string(models.ResolutionManual),
			fieldsJSON, next.Version, now)
	} else {
		result, err = tx.ExecContext(ctx, markConflictResolved,
			req.ConflictID, string(models.ConflictResolved), now, req.ResolvedBy)
	}
	if err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyResolution").Msg("error updating conflict record")
		return models.EntityRecord{}, wrapDBError(ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return models.EntityRecord{}, ErrConflictAlreadyResolved
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "entityRepository.ApplyResolution").Msg("error committing transaction")
		return models.EntityRecord{}, wrapDBError(ErrCommitingTransaction, err)
	}

	return next, nil
}

func (r *entityRepository) writeEntity(ctx context.Context, tx *sql.Tx, record models.EntityRecord) error {
	fieldsJSON, err := marshalFieldMap(record.Fields)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, updateEntity,
		record.Key.TenantID, record.Key.UserID, string(record.Key.EntityType), record.Key.EntityID,
		record.Version, fieldsJSON, record.Deleted, record.UpdatedAt)
	if err != nil {
		return wrapDBError(ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and by *sql.Rows positioned on a row.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntityRecord(row rowScanner, key models.EntityKey) (models.EntityRecord, error) {
	var (
		record    models.EntityRecord
		fieldsRaw []byte
	)

	if err := row.Scan(&record.Version, &fieldsRaw, &record.Deleted, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return models.EntityRecord{}, err
	}

	fields, err := unmarshalFieldMap(fieldsRaw)
	if err != nil {
		return models.EntityRecord{}, err
	}

	record.Key = key
	record.Fields = fields
	return record, nil
}

func lockEntity(ctx context.Context, tx *sql.Tx, key models.EntityKey) (models.EntityRecord, bool, error) {
	row := tx.QueryRowContext(ctx, getEntityForUpdate,
		key.TenantID, key.UserID, string(key.EntityType), key.EntityID)

	record, err := scanEntityRecord(row, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityRecord{}, false, nil
		}
		return models.EntityRecord{}, false, wrapDBError(ErrScanningRow, err)
	}

	return record, true, nil
}

func appendHistory(ctx context.Context, tx *sql.Tx, key models.EntityKey, op models.OperationType, data models.FieldMap, version int64, deviceID string, ts time.Time) error {
	var dataJSON []byte
	if data != nil {
		var err error
		dataJSON, err = marshalFieldMap(data)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, insertHistory,
		key.TenantID, key.UserID, string(key.EntityType), key.EntityID,
		string(op), dataJSON, version, deviceID, ts); err != nil {
		return wrapDBError(ErrExecutingStatement, err)
	}

	return nil
}

func recordProcessedOperation(ctx context.Context, tx *sql.Tx, key models.EntityKey, operationID string, outcome models.OperationOutcome, ts time.Time) error {
	outcomeJSON, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("marshal operation outcome: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertProcessedOperation,
		operationID, key.TenantID, key.UserID, outcomeJSON, ts); err != nil {
		return wrapDBError(ErrExecutingStatement, err)
	}

	return nil
}
