package workers

import (
	"context"
	"time"

	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/service"
)

// autoResolveWorker periodically resolves pending conflicts whose
// entity-type policy allows automatic handling.
type autoResolveWorker struct {
	maintenance service.MaintenanceManager
	interval    time.Duration
	logger      *logger.Logger
}

func newAutoResolveWorker(maintenance service.MaintenanceManager, interval time.Duration, logger *logger.Logger) *autoResolveWorker {
	return &autoResolveWorker{
		maintenance: maintenance,
		interval:    interval,
		logger:      logger,
	}
}

func (w *autoResolveWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("auto-resolve worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("auto-resolve worker stopped")
			return
		case <-ticker.C:
			if _, err := w.maintenance.AutoResolveSweep(ctx); err != nil {
				w.logger.Err(err).Str("func", "autoResolveWorker.Run").Msg("auto-resolve sweep failed")
			}
		}
	}
}
