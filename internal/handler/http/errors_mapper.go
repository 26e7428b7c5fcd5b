package http

import (
	"errors"
	"net/http"

	"github.com/edusync/statesync/internal/service"
	"github.com/edusync/statesync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrEmptyOperationID:  http.StatusBadRequest,
	service.ErrUnknownEntityType: http.StatusBadRequest,
	service.ErrEmptyEntityID:     http.StatusBadRequest,
	service.ErrUnknownOperation:  http.StatusBadRequest,
	service.ErrEmptyData:         http.StatusBadRequest,
	service.ErrChecksumMismatch:  http.StatusBadRequest,
	service.ErrBatchTooLarge:     http.StatusRequestEntityTooLarge,
	service.ErrUnknownResolution: http.StatusBadRequest,
	service.ErrIncompleteMerge:   http.StatusUnprocessableEntity,
	service.ErrInvalidCursor:     http.StatusBadRequest,
	service.ErrFeatureDisabled:   http.StatusNotImplemented,

	store.ErrEntityNotFound:          http.StatusNotFound,
	store.ErrEntityExists:            http.StatusConflict,
	store.ErrEntityDeleted:           http.StatusGone,
	store.ErrVersionConflict:         http.StatusConflict,
	store.ErrConflictNotFound:        http.StatusNotFound,
	store.ErrConflictAlreadyResolved: http.StatusConflict,

	store.ErrStorageUnavailable: http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
