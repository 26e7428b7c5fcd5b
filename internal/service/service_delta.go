package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/store"
	"github.com/edusync/statesync/models"
)

// deltaService implements [DeltaManager]: the read-only field-level
// comparison used by clients to probe for conflicts before committing a
// push, and by the push path itself to scope a detected conflict to the
// exact fields in contention.
type deltaService struct {
	entities store.EntityRepository
	history  store.HistoryRepository
	config   *config.StructuredConfig
	logger   *logger.Logger
}

// NewDeltaService constructs a [DeltaManager].
func NewDeltaService(entities store.EntityRepository, history store.HistoryRepository, cfg *config.StructuredConfig, logger *logger.Logger) DeltaManager {
	return &deltaService{
		entities: entities,
		history:  history,
		config:   cfg,
		logger:   logger,
	}
}

// ComputeDelta compares the client's believed state against the current
// server state. A field conflicts only when the two values differ AND the
// server's value changed after the version the client last saw; a field
// only the client edited is not a conflict, it is simply an un-pushed
// change.
func (s *deltaService) ComputeDelta(ctx context.Context, auth models.AuthContext, req models.DeltaRequest) (models.DeltaResult, error) {
	if !s.config.Sync.DeltaSyncEnabled {
		return models.DeltaResult{}, ErrFeatureDisabled
	}
	if !req.EntityType.Valid() {
		return models.DeltaResult{}, fmt.Errorf("%w: %s", ErrUnknownEntityType, req.EntityType)
	}
	if req.EntityID == "" {
		return models.DeltaResult{}, ErrEmptyEntityID
	}

	key := models.EntityKey{
		TenantID:   auth.TenantID,
		UserID:     auth.UserID,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
	}

	record, err := s.entities.GetEntity(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrEntityNotFound) {
			// nothing on the server yet: every client field is new
			return models.DeltaResult{
				EntityType:  req.EntityType,
				EntityID:    req.EntityID,
				FieldDeltas: fieldDeltas(req.ClientFields, nil, nil),
			}, nil
		}
		return models.DeltaResult{}, err
	}

	result := models.DeltaResult{
		EntityType:    req.EntityType,
		EntityID:      req.EntityID,
		ServerVersion: record.Version,
	}

	if req.ClientVersion == record.Version {
		// client is current: differences are local edits, never conflicts
		result.FieldDeltas = fieldDeltas(req.ClientFields, record.Fields, nil)
		return result, nil
	}

	serverChanged, err := s.history.FieldsChangedSince(ctx, key, req.ClientVersion)
	if err != nil {
		return models.DeltaResult{}, err
	}

	result.FieldDeltas = fieldDeltas(req.ClientFields, record.Fields, serverChanged)
	for _, fd := range result.FieldDeltas {
		if fd.HasConflict {
			result.HasConflict = true
			break
		}
	}

	return result, nil
}

// fieldDeltas compares each client field against the server snapshot. A
// field is conflicting when the values differ and the field is in the
// server-changed set. Iteration follows sorted key order so results are
// deterministic.
func fieldDeltas(clientFields, serverFields models.FieldMap, serverChanged map[string]struct{}) []models.FieldDelta {
	deltas := make([]models.FieldDelta, 0, len(clientFields))
	for _, name := range clientFields.SortedKeys() {
		clientValue := clientFields[name]
		serverValue, onServer := serverFields[name]

		delta := models.FieldDelta{
			Field:       name,
			ClientValue: clientValue,
			ServerValue: serverValue,
		}

		if _, changed := serverChanged[name]; changed && onServer && !clientValue.Equal(serverValue) {
			delta.HasConflict = true
		}

		deltas = append(deltas, delta)
	}
	return deltas
}
