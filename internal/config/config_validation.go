package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and fills defaults
// for every limit or interval that was left unset.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	cfg.applyDefaults()

	if cfg.Sync.PullLimit > cfg.Sync.PullMaxLimit {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Sync.BatchSize <= 0 {
		cfg.Sync.BatchSize = DefaultBatchSize
	}
	if cfg.Sync.PullLimit <= 0 {
		cfg.Sync.PullLimit = DefaultPullLimit
	}
	if cfg.Sync.PullMaxLimit <= 0 {
		cfg.Sync.PullMaxLimit = DefaultPullMaxLimit
	}
	if cfg.Sync.MaxConflictsPerResponse <= 0 {
		cfg.Sync.MaxConflictsPerResponse = DefaultMaxConflictsPerResponse
	}
	if cfg.Sync.ConflictRetentionDays <= 0 {
		cfg.Sync.ConflictRetentionDays = DefaultConflictRetentionDays
	}
	if cfg.Sync.HistoryRetentionDays <= 0 {
		cfg.Sync.HistoryRetentionDays = DefaultHistoryRetentionDays
	}
	if cfg.Live.HeartbeatInterval <= 0 {
		cfg.Live.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if cfg.Live.ClientTimeout <= 0 {
		cfg.Live.ClientTimeout = DefaultClientTimeout
	}
	if cfg.Live.SendBufferSize <= 0 {
		cfg.Live.SendBufferSize = DefaultSendBufferSize
	}
	if cfg.Workers.CleanupInterval <= 0 {
		cfg.Workers.CleanupInterval = DefaultCleanupInterval
	}
	if cfg.Workers.AutoResolveInterval <= 0 {
		cfg.Workers.AutoResolveInterval = DefaultAutoResolveInterval
	}
	if cfg.Workers.SweepBatchSize <= 0 {
		cfg.Workers.SweepBatchSize = DefaultSweepBatchSize
	}
}
