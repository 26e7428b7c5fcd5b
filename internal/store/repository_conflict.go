package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
	"github.com/jackc/pgerrcode"
)

// conflictRepository is the PostgreSQL-backed implementation of
// [ConflictRepository].
type conflictRepository struct {
	*DB
	logger *logger.Logger
}

// NewConflictRepository constructs a [ConflictRepository] backed by the
// provided database connection and logger.
func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateConflict inserts a PENDING conflict and the idempotency record of
// the rejected operation in one transaction, so a retried push of the same
// operation id is answered with the same conflict instead of spawning a
// duplicate.
func (r *conflictRepository) CreateConflict(ctx context.Context, conflict models.SyncConflict, operationID string, outcome models.OperationOutcome) error {
	log := logger.FromContext(ctx)

	clientJSON, err := marshalFieldMap(conflict.ClientData)
	if err != nil {
		return err
	}
	serverJSON, err := marshalFieldMap(conflict.ServerData)
	if err != nil {
		return err
	}
	fieldsJSON, err := marshalStrings(conflict.ConflictingFields)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "conflictRepository.CreateConflict").Msg("error during opening transaction")
		return wrapDBError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, insertConflict,
		conflict.ID, conflict.TenantID, conflict.UserID,
		string(conflict.EntityType), conflict.EntityID,
		clientJSON, serverJSON,
		conflict.ClientVersion, conflict.ServerVersion,
		conflict.ClientTimestamp, conflict.ServerTimestamp,
		conflict.ClientDeviceID, fieldsJSON,
		string(conflict.Status), string(conflict.SuggestedResolution),
		conflict.CreatedAt); err != nil {
		log.Err(err).Str("func", "conflictRepository.CreateConflict").Msg("error inserting conflict")
		return wrapDBError(ErrExecutingStatement, err)
	}

	key := models.EntityKey{
		TenantID:   conflict.TenantID,
		UserID:     conflict.UserID,
		EntityType: conflict.EntityType,
		EntityID:   conflict.EntityID,
	}
	if err = recordProcessedOperation(ctx, tx, key, operationID, outcome, conflict.CreatedAt); err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			return ErrOperationAlreadyProcessed
		}
		log.Err(err).Str("func", "conflictRepository.CreateConflict").Msg("error recording processed operation")
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "conflictRepository.CreateConflict").Msg("error committing transaction")
		return wrapDBError(ErrCommitingTransaction, err)
	}

	return nil
}

// GetConflict returns one conflict by id scoped to a tenant.
func (r *conflictRepository) GetConflict(ctx context.Context, tenantID, conflictID string) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getConflictByID, conflictID, tenantID)

	conflict, err := scanConflict(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncConflict{}, ErrConflictNotFound
		}

		log.Err(err).
			Str("func", "conflictRepository.GetConflict").
			Str("conflict_id", conflictID).
			Msg("failed to read conflict")
		return models.SyncConflict{}, err
	}

	return conflict, nil
}

// ListPendingConflicts returns up to limit PENDING conflicts for one user,
// oldest first.
func (r *conflictRepository) ListPendingConflicts(ctx context.Context, tenantID, userID string, limit int) ([]models.SyncConflict, error) {
	return r.listConflicts(ctx, tenantID, userID, false, limit)
}

// ListAutoResolvable returns up to limit PENDING conflicts across all
// tenants whose suggested resolution is not MANUAL.
func (r *conflictRepository) ListAutoResolvable(ctx context.Context, limit int) ([]models.SyncConflict, error) {
	return r.listConflicts(ctx, "", "", true, limit)
}

func (r *conflictRepository) listConflicts(ctx context.Context, tenantID, userID string, autoOnly bool, limit int) ([]models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListConflictsQuery(tenantID, userID, autoOnly, limit)
	if err != nil {
		log.Err(err).Str("func", "conflictRepository.listConflicts").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "conflictRepository.listConflicts").Msg("error executing query")
		return nil, wrapDBError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var conflicts []models.SyncConflict
	for rows.Next() {
		conflict, scanErr := scanConflict(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "conflictRepository.listConflicts").Msg("error scanning conflict row")
			return nil, scanErr
		}
		conflicts = append(conflicts, conflict)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanningRows, err)
	}

	return conflicts, nil
}

// MarkResolved transitions a PENDING conflict to a terminal status without
// touching entity state. Used for REJECTED transitions and SERVER_WINS
// resolutions, where the server snapshot already stands.
func (r *conflictRepository) MarkResolved(ctx context.Context, conflictID string, status models.ConflictStatus, resolvedBy string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markConflictResolved,
		conflictID, string(status), time.Now().UTC(), resolvedBy)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.MarkResolved").
			Str("conflict_id", conflictID).
			Msg("error updating conflict status")
		return wrapDBError(ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrConflictAlreadyResolved
	}

	return nil
}

// PurgeOlderThan deletes conflicts created before cutoff.
func (r *conflictRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, purgeConflicts, cutoff)
	if err != nil {
		log.Err(err).Str("func", "conflictRepository.PurgeOlderThan").Msg("error purging conflicts")
		return 0, wrapDBError(ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, wrapDBError(ErrExecutingStatement, err)
	}
	return removed, nil
}

func scanConflict(row rowScanner) (models.SyncConflict, error) {
	var (
		conflict   models.SyncConflict
		entityType string
		clientRaw  []byte
		serverRaw  []byte
		fieldsRaw  []byte
		status     string
		suggested  string
		resolvedAt sql.NullTime
		resolvedBy sql.NullString
	)

	if err := row.Scan(
		&conflict.ID, &conflict.TenantID, &conflict.UserID,
		&entityType, &conflict.EntityID,
		&clientRaw, &serverRaw,
		&conflict.ClientVersion, &conflict.ServerVersion,
		&conflict.ClientTimestamp, &conflict.ServerTimestamp,
		&conflict.ClientDeviceID, &fieldsRaw,
		&status, &suggested, &conflict.CreatedAt,
		&resolvedAt, &resolvedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncConflict{}, err
		}
		return models.SyncConflict{}, wrapDBError(ErrScanningRow, err)
	}

	clientData, err := unmarshalFieldMap(clientRaw)
	if err != nil {
		return models.SyncConflict{}, err
	}
	serverData, err := unmarshalFieldMap(serverRaw)
	if err != nil {
		return models.SyncConflict{}, err
	}
	conflictingFields, err := unmarshalStrings(fieldsRaw)
	if err != nil {
		return models.SyncConflict{}, err
	}

	conflict.EntityType = models.EntityType(entityType)
	conflict.ClientData = clientData
	conflict.ServerData = serverData
	conflict.ConflictingFields = conflictingFields
	conflict.Status = models.ConflictStatus(status)
	conflict.SuggestedResolution = models.ResolutionStrategy(suggested)
	if resolvedAt.Valid {
		t := resolvedAt.Time
		conflict.ResolvedAt = &t
	}
	if resolvedBy.Valid {
		conflict.ResolvedBy = resolvedBy.String
	}

	return conflict, nil
}
