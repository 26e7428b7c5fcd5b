package store

import (
	"github.com/edusync/statesync/internal/logger"
)

// Storages bundles every repository over one shared database connection.
type Storages struct {
	Entities     EntityRepository
	History      HistoryRepository
	Conflicts    ConflictRepository
	ProcessedOps ProcessedOpRepository
}

// NewStorages wires all repositories to the given database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Entities:     NewEntityRepository(db, logger),
		History:      NewHistoryRepository(db, logger),
		Conflicts:    NewConflictRepository(db, logger),
		ProcessedOps: NewProcessedOpRepository(db, logger),
	}
}
