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
)

// processedOpRepository is the PostgreSQL-backed implementation of
// [ProcessedOpRepository]. Inserts happen inside the entity and conflict
// repositories' transactions; this type only reads and prunes.
type processedOpRepository struct {
	*DB
	logger *logger.Logger
}

// NewProcessedOpRepository constructs a [ProcessedOpRepository] backed by
// the provided database connection and logger.
func NewProcessedOpRepository(db *DB, logger *logger.Logger) ProcessedOpRepository {
	return &processedOpRepository{
		DB:     db,
		logger: logger,
	}
}

// GetOutcome returns the stored outcome for an operation id. The second
// return value is false when the operation has not been seen before.
func (r *processedOpRepository) GetOutcome(ctx context.Context, tenantID, userID, operationID string) (models.OperationOutcome, bool, error) {
	log := logger.FromContext(ctx)

	var outcomeRaw []byte
	err := r.DB.QueryRowContext(ctx, getProcessedOperation, operationID, tenantID, userID).Scan(&outcomeRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OperationOutcome{}, false, nil
		}

		log.Err(err).
			Str("func", "processedOpRepository.GetOutcome").
			Str("operation_id", operationID).
			Msg("failed to read processed operation")
		return models.OperationOutcome{}, false, wrapDBError(ErrScanningRow, err)
	}

	var outcome models.OperationOutcome
	if err = json.Unmarshal(outcomeRaw, &outcome); err != nil {
		return models.OperationOutcome{}, false, fmt.Errorf("unmarshal operation outcome: %w", err)
	}

	return outcome, true, nil
}

// PurgeOlderThan deletes idempotency records processed before cutoff.
func (r *processedOpRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, purgeProcessedOperations, cutoff)
	if err != nil {
		log.Err(err).Str("func", "processedOpRepository.PurgeOlderThan").Msg("error purging processed operations")
		return 0, wrapDBError(ErrExecutingStatement, err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, wrapDBError(ErrExecutingStatement, err)
	}
	return removed, nil
}
