package service

import "errors"

var (
	// ErrEmptyOperationID is returned when an operation arrives without an
	// idempotency key.
	ErrEmptyOperationID = errors.New("operation id is empty")

	// ErrUnknownEntityType is returned for operations or probes naming an
	// entity type outside the closed set.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrEmptyEntityID is returned when an operation or probe does not name
	// an entity instance.
	ErrEmptyEntityID = errors.New("entity id is empty")

	// ErrUnknownOperation is returned for operation types other than
	// CREATE, UPDATE, DELETE.
	ErrUnknownOperation = errors.New("unknown operation type")

	// ErrEmptyData is returned when a CREATE or UPDATE carries no fields.
	ErrEmptyData = errors.New("operation data is empty")

	// ErrChecksumMismatch is returned when the declared checksum does not
	// match the operation payload.
	ErrChecksumMismatch = errors.New("operation checksum mismatch")

	// ErrBatchTooLarge is returned when a push exceeds the configured
	// operation batch size.
	ErrBatchTooLarge = errors.New("push batch exceeds configured limit")

	// ErrUnknownResolution is returned when a resolution request names a
	// strategy outside the sealed set.
	ErrUnknownResolution = errors.New("unknown resolution strategy")

	// ErrIncompleteMerge is returned when a MANUAL resolution does not
	// cover every conflicting field of the target conflict.
	ErrIncompleteMerge = errors.New("merged data does not cover all conflicting fields")

	// ErrInvalidCursor is returned when a pull cursor cannot be decoded.
	ErrInvalidCursor = errors.New("invalid pull cursor")

	// ErrFeatureDisabled is returned when a request targets a feature
	// switched off by configuration.
	ErrFeatureDisabled = errors.New("feature is disabled by configuration")
)
