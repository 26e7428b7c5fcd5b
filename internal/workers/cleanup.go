package workers

import (
	"context"
	"time"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/service"
)

// cleanupWorker periodically purges conflicts, history rows, and
// idempotency records past their retention windows.
type cleanupWorker struct {
	maintenance service.MaintenanceManager
	interval    time.Duration
	logger      *logger.Logger
}

func newCleanupWorker(maintenance service.MaintenanceManager, interval time.Duration, logger *logger.Logger) *cleanupWorker {
	return &cleanupWorker{
		maintenance: maintenance,
		interval:    interval,
		logger:      logger,
	}
}

func (w *cleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("cleanup worker stopped")
			return
		case <-ticker.C:
			if _, err := w.maintenance.CleanupExpired(ctx); err != nil {
				w.logger.Err(err).Str("func", "cleanupWorker.Run").Msg("retention cleanup failed")
			}
		}
	}
}
