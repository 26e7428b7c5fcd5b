package service

import (
	"github.com/edusync/statesync/internal/config"
	"github.com/edusync/statesync/internal/logger"
	"github.com/edusync/statesync/internal/store"
)

// Services bundles the business-logic layer behind the transport handlers
// and the background workers.
type Services struct {
	Sync        SyncManager
	Delta       DeltaManager
	Conflicts   ConflictManager
	Maintenance MaintenanceManager
}

// NewServices wires every service to the shared storages, configuration,
// and notifier set.
func NewServices(storages *store.Storages, notifiers []Notifier, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		Sync:        NewSyncService(storages, notifiers, cfg, logger),
		Delta:       NewDeltaService(storages.Entities, storages.History, cfg, logger),
		Conflicts:   NewConflictService(storages.Entities, storages.Conflicts, notifiers, cfg, logger),
		Maintenance: NewMaintenanceService(storages, notifiers, cfg, logger),
	}
}
