package workers

import (
	"context"
	"sync"

	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/service"
)

// Workers aggregates the maintenance jobs of the sync engine.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the standard worker set: retention cleanup and, when
// enabled, the auto-resolve sweep.
func NewWorkers(maintenance service.MaintenanceManager, cfg *config.StructuredConfig, logger *logger.Logger) *Workers {
	w := &Workers{
		workers: []Worker{
			newCleanupWorker(maintenance, cfg.Workers.CleanupInterval, logger),
		},
	}

	if cfg.Sync.AutoResolveEnabled {
		w.workers = append(w.workers,
			newAutoResolveWorker(maintenance, cfg.Workers.AutoResolveInterval, logger))
	}

	return w
}

// Run launches every worker on its own goroutine and blocks until all of
// them return, which happens when ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}
