package store

import (
	"context"
	"fmt"
	"time"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/models"
)

// historyRepository is the PostgreSQL-backed implementation of
// [HistoryRepository]. Rows are only ever appended here by the entity
// repository; this type reads and prunes them.
type historyRepository struct {
	*DB
	logger *logger.Logger
}

// NewHistoryRepository constructs a [HistoryRepository] backed by the
// provided database connection and logger.
func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	return &historyRepository{
		DB:     db,
		logger: logger,
	}
}

// ListChanges returns history entries matching q, ordered by ascending
// (timestamp, version). When q.Limit is set the repository fetches one
// extra row, letting the caller detect a truncated page without a second
// query; the extra row is not returned.
func (r *historyRepository) ListChanges(ctx context.Context, q ChangeQuery) ([]models.ServerChange, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListChangesQuery(q)
	if err != nil {
		log.Err(err).Str("func", "historyRepository.ListChanges").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "historyRepository.ListChanges").Msg("error executing query")
		return nil, wrapDBError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var changes []models.ServerChange
	for rows.Next() {
		var (
			change     models.ServerChange
			entityType string
			operation  string
			dataRaw    []byte
		)

		if err = rows.Scan(&entityType, &change.EntityID, &operation,
			&dataRaw, &change.Version, &change.DeviceID, &change.Timestamp); err != nil {
			log.Err(err).Str("func", "historyRepository.ListChanges").Msg("error scanning history row")
			return nil, wrapDBError(ErrScanningRows, err)
		}

		data, unmarshalErr := unmarshalFieldMap(dataRaw)
		if unmarshalErr != nil {
			return nil, unmarshalErr
		}

		change.EntityType = models.EntityType(entityType)
		change.Operation = models.OperationType(operation)
		change.Data = data
		changes = append(changes, change)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanningRows, err)
	}

	return changes, nil
}

// FieldsChangedSince returns the union of field names written to one
// entity after the given version. The delta computer intersects this set
// with the client's edits to separate true conflicts from fields only one
// side touched.
func (r *historyRepository) FieldsChangedSince(ctx context.Context, key models.EntityKey, sinceVersion int64) (map[string]struct{}, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, fieldsChangedSince,
		key.TenantID, key.UserID, string(key.EntityType), key.EntityID, sinceVersion)
	if err != nil {
		log.Err(err).Str("func", "historyRepository.FieldsChangedSince").Msg("error executing query")
		return nil, wrapDBError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	changed := make(map[string]struct{})
	for rows.Next() {
		var dataRaw []byte
		if err = rows.Scan(&dataRaw); err != nil {
			return nil, wrapDBError(ErrScanningRows, err)
		}

		data, unmarshalErr := unmarshalFieldMap(dataRaw)
		if unmarshalErr != nil {
			return nil, unmarshalErr
		}
		for name := range data {
			changed[name] = struct{}{}
		}
	}
	if err = rows.Err(); err != nil {
		return nil, wrapDBError(ErrScanningRows, err)
	}

	return changed, nil
}

// PurgeOlderThan deletes history entries with timestamp before cutoff.
func (r *historyRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, purgeHistory, cutoff)
	if err != nil {
		log.Err(err).Str("func", "historyRepository.PurgeOlderThan").Msg("error purging history")
		return 0, wrapDBError(ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, wrapDBError(ErrExecutingStatement, err)
	}
	return removed, nil
}
