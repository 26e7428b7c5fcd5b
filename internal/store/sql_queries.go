package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	getEntity = `SELECT version, fields, deleted, created_at, updated_at
		FROM entities
		WHERE tenant_id = $1 AND user_id = $2 AND entity_type = $3 AND entity_id = $4;`

	// FOR UPDATE serializes concurrent pushes touching the same entity;
	// pushes for different entities lock different rows and do not block
	// each other.
	getEntityForUpdate = `SELECT version, fields, deleted, created_at, updated_at
		FROM entities
		WHERE tenant_id = $1 AND user_id = $2 AND entity_type = $3 AND entity_id = $4
		FOR UPDATE;`

	insertEntity = `INSERT INTO entities (
			tenant_id,
			user_id,
			entity_type,
			entity_id,
			version,
			fields,
			deleted,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8);`

	updateEntity = `UPDATE entities
		SET version = $5, fields = $6, deleted = $7, updated_at = $8
		WHERE tenant_id = $1 AND user_id = $2 AND entity_type = $3 AND entity_id = $4;`

	insertHistory = `INSERT INTO sync_history (
			tenant_id,
			user_id,
			entity_type,
			entity_id,
			operation,
			data,
			version,
			device_id,
			ts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	fieldsChangedSince = `SELECT data
		FROM sync_history
		WHERE tenant_id = $1 AND user_id = $2 AND entity_type = $3 AND entity_id = $4
			AND version > $5 AND operation <> 'DELETE';`

	purgeHistory = `DELETE FROM sync_history WHERE ts < $1;`

	insertProcessedOperation = `INSERT INTO processed_operations (
			operation_id,
			tenant_id,
			user_id,
			outcome,
			processed_at
		) VALUES ($1, $2, $3, $4, $5);`

	getProcessedOperation = `SELECT outcome
		FROM processed_operations
		WHERE operation_id = $1 AND tenant_id = $2 AND user_id = $3;`

	purgeProcessedOperations = `DELETE FROM processed_operations WHERE processed_at < $1;`

	insertConflict = `INSERT INTO sync_conflicts (
			id,
			tenant_id,
			user_id,
			entity_type,
			entity_id,
			client_data,
			server_data,
			client_version,
			server_version,
			client_ts,
			server_ts,
			client_device_id,
			conflicting_fields,
			status,
			suggested_resolution,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	conflictColumns = `id, tenant_id, user_id, entity_type, entity_id,
		client_data, server_data, client_version, server_version,
		client_ts, server_ts, client_device_id, conflicting_fields,
		status, suggested_resolution, created_at, resolved_at, resolved_by`

	getConflictByID = `SELECT ` + conflictColumns + `
		FROM sync_conflicts
		WHERE id = $1 AND tenant_id = $2;`

	// The status guard makes terminal transitions race-free: whichever of
	// the manual flow and the auto-resolve sweep commits first wins, the
	// other sees zero affected rows.
	markConflictResolved = `UPDATE sync_conflicts
		SET status = $2, resolved_at = $3, resolved_by = $4
		WHERE id = $1 AND status = 'PENDING';`

	rescopeConflict = `UPDATE sync_conflicts
		SET conflicting_fields = $2, suggested_resolution = $3,
			server_data = $4, server_version = $5, server_ts = $6
		WHERE id = $1 AND status = 'PENDING';`

	purgeConflicts = `DELETE FROM sync_conflicts WHERE created_at < $1;`
)

// psql is the shared squirrel builder configured for PostgreSQL-style
// $N placeholders. Used for the dynamic queries (pull paging, conflict
// listings) where the predicate set depends on the request.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListChangesQuery assembles the pull query: tenant/user scope, an
// optional entity-type filter, and either a timestamp lower bound or a
// strict (ts, version) cursor predicate for resumption.
func buildListChangesQuery(q ChangeQuery) (string, []any, error) {
	builder := psql.
		Select("entity_type", "entity_id", "operation", "data", "version", "device_id", "ts").
		From("sync_history").
		Where(sq.Eq{"tenant_id": q.TenantID, "user_id": q.UserID}).
		OrderBy("ts ASC", "version ASC")

	if len(q.EntityTypes) > 0 {
		types := make([]string, 0, len(q.EntityTypes))
		for _, t := range q.EntityTypes {
			types = append(types, string(t))
		}
		builder = builder.Where(sq.Eq{"entity_type": types})
	}

	switch {
	case q.Cursor != nil:
		builder = builder.Where(sq.Or{
			sq.Gt{"ts": q.Cursor.Timestamp},
			sq.And{
				sq.Eq{"ts": q.Cursor.Timestamp},
				sq.Gt{"version": q.Cursor.Version},
			},
		})
	case !q.Since.IsZero():
		builder = builder.Where(sq.Gt{"ts": q.Since})
	}

	if q.Limit > 0 {
		// one extra row lets the caller detect truncation
		builder = builder.Limit(uint64(q.Limit + 1))
	}

	return builder.ToSql()
}

// buildListConflictsQuery assembles the PENDING-conflict listings used by
// the client UI and by the auto-resolve sweep.
func buildListConflictsQuery(tenantID, userID string, autoOnly bool, limit int) (string, []any, error) {
	builder := psql.
		Select("id", "tenant_id", "user_id", "entity_type", "entity_id",
			"client_data", "server_data", "client_version", "server_version",
			"client_ts", "server_ts", "client_device_id", "conflicting_fields",
			"status", "suggested_resolution", "created_at", "resolved_at", "resolved_by").
		From("sync_conflicts").
		Where(sq.Eq{"status": "PENDING"}).
		OrderBy("created_at ASC")

	if tenantID != "" {
		builder = builder.Where(sq.Eq{"tenant_id": tenantID})
	}
	if userID != "" {
		builder = builder.Where(sq.Eq{"user_id": userID})
	}
	if autoOnly {
		builder = builder.Where(sq.NotEq{"suggested_resolution": "MANUAL"})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	return builder.ToSql()
}
