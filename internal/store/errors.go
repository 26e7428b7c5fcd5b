package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntityNotFound is returned when an UPDATE or DELETE operation
	// targets an entity that does not exist in the database.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrEntityExists is returned when a CREATE operation targets an
	// entity id that already holds a live record.
	ErrEntityExists = errors.New("entity already exists")

	// ErrEntityDeleted is returned when any operation targets an entity
	// that was soft-deleted. Deletions are terminal: re-creation requires
	// a new entity id.
	ErrEntityDeleted = errors.New("entity was deleted")

	// ErrVersionConflict is returned when the optimistic-locking check
	// fails: the version supplied by the client does not match the current
	// version stored in the database, meaning another device has modified
	// the record since the client last synchronized.
	ErrVersionConflict = errors.New("entity version conflict occurred")

	// ErrConflictNotFound is returned when a conflict id does not match
	// any stored conflict record.
	ErrConflictNotFound = errors.New("sync conflict was not found")

	// ErrConflictAlreadyResolved is returned when a resolution targets a
	// conflict that has already reached a terminal status. Resolution is
	// guarded at the storage level so the manual flow and the auto-resolve
	// sweep cannot both win.
	ErrConflictAlreadyResolved = errors.New("sync conflict is already resolved")

	// ErrOperationAlreadyProcessed is returned when the idempotency record
	// for an operation id already exists, i.e. a concurrent retry applied
	// the operation first.
	ErrOperationAlreadyProcessed = errors.New("operation was already processed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrStorageUnavailable replaces the low-level sentinels above when the
	// underlying driver error is classified as transient (connection loss,
	// serialization failure, deadlock rollback). Safe to retry with the
	// same operation id.
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)
