package service

import (
	"context"
	"fmt"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/store"
	"github.com/edusync/statesync/models"
)

// resolutionOutcome is what a resolver decides should happen to a conflict.
type resolutionOutcome struct {
	// serverStands is true when the server snapshot already holds the
	// winning state; the conflict is closed without touching the entity.
	serverStands bool

	// changed holds the fields to overlay on the current server snapshot.
	// Ignored when serverStands is true.
	changed models.FieldMap

	// residual lists conflicting fields the strategy could not settle. A
	// non-empty residual leaves the conflict pending, rescoped to exactly
	// those fields.
	residual []string
}

// resolver turns one pending conflict into a resolution outcome. The
// strategy set is sealed: every implementation lives in this file and
// resolverFor is the only constructor.
type resolver interface {
	resolve(conflict models.SyncConflict, serverFields models.FieldMap, merged models.FieldMap) (resolutionOutcome, error)
}

// resolverFor maps a strategy to its resolver. Unknown strategies are a
// caller error.
func resolverFor(strategy models.ResolutionStrategy) (resolver, error) {
	switch strategy {
	case models.ResolutionServerWins:
		return serverWinsResolver{}, nil
	case models.ResolutionClientWins:
		return clientWinsResolver{}, nil
	case models.ResolutionLastWriteWins:
		return lastWriteWinsResolver{}, nil
	case models.ResolutionMerge:
		return mergeResolver{}, nil
	case models.ResolutionManual:
		return manualResolver{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownResolution, strategy)
	}
}

// serverWinsResolver discards the client's diverged edit entirely.
type serverWinsResolver struct{}

func (serverWinsResolver) resolve(_ models.SyncConflict, _ models.FieldMap, _ models.FieldMap) (resolutionOutcome, error) {
	return resolutionOutcome{serverStands: true}, nil
}

// clientWinsResolver overlays every client field on the server snapshot.
type clientWinsResolver struct{}

func (clientWinsResolver) resolve(conflict models.SyncConflict, _ models.FieldMap, _ models.FieldMap) (resolutionOutcome, error) {
	return resolutionOutcome{changed: conflict.ClientData.Clone()}, nil
}

// lastWriteWinsResolver compares edit timestamps; the server side wins
// ties, so a device with a skewed fast clock cannot override concurrent
// server state by exactly matching its timestamp.
type lastWriteWinsResolver struct{}

func (lastWriteWinsResolver) resolve(conflict models.SyncConflict, _ models.FieldMap, _ models.FieldMap) (resolutionOutcome, error) {
	if conflict.ClientTimestamp.After(conflict.ServerTimestamp) {
		return resolutionOutcome{changed: conflict.ClientData.Clone()}, nil
	}
	return resolutionOutcome{serverStands: true}, nil
}

// mergeResolver applies the client fields nobody disputes and leaves the
// contested ones pending. A conflicting field whose two values have since
// converged is treated as settled.
type mergeResolver struct{}

func (mergeResolver) resolve(conflict models.SyncConflict, serverFields models.FieldMap, _ models.FieldMap) (resolutionOutcome, error) {
	contested := make(map[string]struct{}, len(conflict.ConflictingFields))
	for _, name := range conflict.ConflictingFields {
		contested[name] = struct{}{}
	}

	outcome := resolutionOutcome{changed: models.FieldMap{}}
	for name, clientValue := range conflict.ClientData {
		if _, ok := contested[name]; !ok {
			outcome.changed[name] = clientValue
			continue
		}
		if serverValue, onServer := serverFields[name]; onServer && clientValue.Equal(serverValue) {
			// both sides arrived at the same value, nothing to dispute
			continue
		}
		outcome.residual = append(outcome.residual, name)
	}

	return outcome, nil
}

// manualResolver applies a human-provided field set, which must cover
// every conflicting field.
type manualResolver struct{}

func (manualResolver) resolve(conflict models.SyncConflict, _ models.FieldMap, merged models.FieldMap) (resolutionOutcome, error) {
	for _, name := range conflict.ConflictingFields {
		if _, ok := merged[name]; !ok {
			return resolutionOutcome{}, fmt.Errorf("%w: missing %q", ErrIncompleteMerge, name)
		}
	}
	return resolutionOutcome{changed: merged.Clone()}, nil
}

// conflictService implements [ConflictManager].
type conflictService struct {
	entities  store.EntityRepository
	conflicts store.ConflictRepository
	notifiers []Notifier
	config    *config.StructuredConfig
	logger    *logger.Logger
}

// NewConflictService constructs a [ConflictManager]. Notifiers are invoked
// best-effort after a resolution writes a new entity version.
func NewConflictService(entities store.EntityRepository, conflicts store.ConflictRepository, notifiers []Notifier, cfg *config.StructuredConfig, logger *logger.Logger) ConflictManager {
	return &conflictService{
		entities:  entities,
		conflicts: conflicts,
		notifiers: notifiers,
		config:    cfg,
		logger:    logger,
	}
}

// ListConflicts returns the caller's pending conflicts, oldest first,
// capped by the configured response limit.
func (s *conflictService) ListConflicts(ctx context.Context, auth models.AuthContext) (models.ConflictListResult, error) {
	conflicts, err := s.conflicts.ListPendingConflicts(ctx, auth.TenantID, auth.UserID, s.config.Sync.MaxConflictsPerResponse)
	if err != nil {
		return models.ConflictListResult{}, err
	}

	if conflicts == nil {
		conflicts = []models.SyncConflict{}
	}
	return models.ConflictListResult{
		Conflicts: conflicts,
		Length:    len(conflicts),
	}, nil
}

// ResolveConflict applies the requested strategy to one pending conflict
// on behalf of the caller and returns the conflict's updated record.
func (s *conflictService) ResolveConflict(ctx context.Context, auth models.AuthContext, conflictID string, req models.ConflictResolutionRequest) (models.SyncConflict, error) {
	if !req.Resolution.Valid() {
		return models.SyncConflict{}, fmt.Errorf("%w: %s", ErrUnknownResolution, req.Resolution)
	}

	conflict, err := s.conflicts.GetConflict(ctx, auth.TenantID, conflictID)
	if err != nil {
		return models.SyncConflict{}, err
	}
	if conflict.Status.Terminal() {
		return models.SyncConflict{}, store.ErrConflictAlreadyResolved
	}

	if err = resolveConflict(ctx, s.entities, s.conflicts, s.notifiers, conflict, req.Resolution, req.MergedData, auth.UserID); err != nil {
		return models.SyncConflict{}, err
	}

	return s.conflicts.GetConflict(ctx, auth.TenantID, conflictID)
}

// resolveConflict runs one strategy against one pending conflict. Shared
// between the manual resolution endpoint and the auto-resolve sweep.
func resolveConflict(ctx context.Context, entities store.EntityRepository, conflicts store.ConflictRepository, notifiers []Notifier, conflict models.SyncConflict, strategy models.ResolutionStrategy, merged models.FieldMap, resolvedBy string) error {
	log := logger.FromContext(ctx)

	r, err := resolverFor(strategy)
	if err != nil {
		return err
	}

	key := models.EntityKey{
		TenantID:   conflict.TenantID,
		UserID:     conflict.UserID,
		EntityType: conflict.EntityType,
		EntityID:   conflict.EntityID,
	}

	record, err := entities.GetEntity(ctx, key)
	if err != nil {
		return err
	}

	outcome, err := r.resolve(conflict, record.Fields, merged)
	if err != nil {
		return err
	}

	if outcome.serverStands {
		return conflicts.MarkResolved(ctx, conflict.ID, models.ConflictResolved, resolvedBy)
	}

	resolved, err := entities.ApplyResolution(ctx, store.ResolutionApply{
		Key:         key,
		ConflictID:  conflict.ID,
		ResolvedBy:  resolvedBy,
		Fields:      record.Fields.Merge(outcome.changed),
		ChangedData: outcome.changed,
		Residual:    outcome.residual,
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("conflict_id", conflict.ID).
		Str("strategy", string(strategy)).
		Int64("version", resolved.Version).
		Int("residual_fields", len(outcome.residual)).
		Msg("conflict resolution applied")

	notification := models.ChangeNotification{
		TenantID:   conflict.TenantID,
		UserID:     conflict.UserID,
		EntityType: conflict.EntityType,
		EntityID:   conflict.EntityID,
		Operation:  models.OperationUpdate,
		Version:    resolved.Version,
	}
	for _, n := range notifiers {
		n.NotifyChange(ctx, notification)
	}

	return nil
}
