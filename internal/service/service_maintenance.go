package service

import (
	"context"
	"errors"
	"time"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/store"
	"github.com/edusync/statesync/models"
)

// maintenanceService implements [MaintenanceManager]: the retention
// cleanup and the auto-resolve sweep invoked by the background workers.
type maintenanceService struct {
	entities     store.EntityRepository
	history      store.HistoryRepository
	conflicts    store.ConflictRepository
	processedOps store.ProcessedOpRepository
	notifiers    []Notifier
	config       *config.StructuredConfig
	logger       *logger.Logger
}

// NewMaintenanceService constructs a [MaintenanceManager].
func NewMaintenanceService(storages *store.Storages, notifiers []Notifier, cfg *config.StructuredConfig, logger *logger.Logger) MaintenanceManager {
	return &maintenanceService{
		entities:     storages.Entities,
		history:      storages.History,
		conflicts:    storages.Conflicts,
		processedOps: storages.ProcessedOps,
		notifiers:    notifiers,
		config:       cfg,
		logger:       logger,
	}
}

// CleanupExpired purges records older than their retention windows:
// conflicts by the conflict retention, history and idempotency records by
// the history retention. Partial failure still reports what was removed.
func (s *maintenanceService) CleanupExpired(ctx context.Context) (CleanupStats, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	var stats CleanupStats

	conflictCutoff := now.AddDate(0, 0, -s.config.Sync.ConflictRetentionDays)
	purged, err := s.conflicts.PurgeOlderThan(ctx, conflictCutoff)
	if err != nil {
		return stats, err
	}
	stats.ConflictsPurged = purged

	historyCutoff := now.AddDate(0, 0, -s.config.Sync.HistoryRetentionDays)
	purged, err = s.history.PurgeOlderThan(ctx, historyCutoff)
	if err != nil {
		return stats, err
	}
	stats.HistoryPurged = purged

	purged, err = s.processedOps.PurgeOlderThan(ctx, historyCutoff)
	if err != nil {
		return stats, err
	}
	stats.ProcessedOpsPurged = purged

	log.Info().
		Int64("conflicts_purged", stats.ConflictsPurged).
		Int64("history_purged", stats.HistoryPurged).
		Int64("processed_ops_purged", stats.ProcessedOpsPurged).
		Msg("retention cleanup finished")

	return stats, nil
}

// AutoResolveSweep resolves pending conflicts whose entity-type policy
// permits it, using each conflict's suggested strategy. A conflict that
// fails to resolve is left pending for the next pass; the sweep never
// aborts on a single failure.
func (s *maintenanceService) AutoResolveSweep(ctx context.Context) (SweepStats, error) {
	log := logger.FromContext(ctx)

	var stats SweepStats

	if !s.config.Sync.AutoResolveEnabled {
		return stats, nil
	}

	conflicts, err := s.conflicts.ListAutoResolvable(ctx, s.config.Workers.SweepBatchSize)
	if err != nil {
		return stats, err
	}

	for _, conflict := range conflicts {
		policy := models.PolicyFor(conflict.EntityType)
		if !policy.AutoResolve || conflict.SuggestedResolution == models.ResolutionManual {
			stats.Skipped++
			continue
		}

		err = resolveConflict(ctx, s.entities, s.conflicts, s.notifiers, conflict, conflict.SuggestedResolution, nil, "auto-resolve")
		switch {
		case err == nil:
			stats.Resolved++
		case isBenignSweepError(err):
			stats.Skipped++
		default:
			log.Err(err).
				Str("conflict_id", conflict.ID).
				Str("strategy", string(conflict.SuggestedResolution)).
				Msg("auto-resolve failed for conflict")
			stats.Failed++
		}
	}

	log.Info().
		Int("resolved", stats.Resolved).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Msg("auto-resolve sweep finished")

	return stats, nil
}

// isBenignSweepError reports errors that mean the conflict no longer needs
// the sweep: somebody resolved it concurrently, or its entity is gone.
func isBenignSweepError(err error) bool {
	return errors.Is(err, store.ErrConflictAlreadyResolved) ||
		errors.Is(err, store.ErrEntityNotFound)
}
