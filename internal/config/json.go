package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations, so a configuration file can spell "30s"
// instead of nanosecond integers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Sync struct {
		BatchSize               int  `json:"batch_size"`
		PullLimit               int  `json:"pull_limit"`
		PullMaxLimit            int  `json:"pull_max_limit"`
		MaxConflictsPerResponse int  `json:"max_conflicts_per_response"`
		ConflictRetentionDays   int  `json:"conflict_retention_days"`
		HistoryRetentionDays    int  `json:"history_retention_days"`
		DeltaSyncEnabled        bool `json:"delta_sync_enabled"`
		AutoResolveEnabled      bool `json:"auto_resolve_enabled"`
		LiveSyncEnabled         bool `json:"live_sync_enabled"`
	} `json:"sync,omitempty"`

	Live struct {
		HeartbeatInterval Duration `json:"heartbeat_interval"`
		ClientTimeout     Duration `json:"client_timeout"`
		SendBufferSize    int      `json:"send_buffer_size"`
	} `json:"live,omitempty"`

	Adapter struct {
		WebhookURL     string   `json:"webhook_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		CleanupInterval     Duration `json:"cleanup_interval"`
		AutoResolveInterval Duration `json:"auto_resolve_interval"`
		SweepBatchSize      int      `json:"sweep_batch_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			Version:      jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Sync: Sync{
			BatchSize:               jsonCfg.Sync.BatchSize,
			PullLimit:               jsonCfg.Sync.PullLimit,
			PullMaxLimit:            jsonCfg.Sync.PullMaxLimit,
			MaxConflictsPerResponse: jsonCfg.Sync.MaxConflictsPerResponse,
			ConflictRetentionDays:   jsonCfg.Sync.ConflictRetentionDays,
			HistoryRetentionDays:    jsonCfg.Sync.HistoryRetentionDays,
			DeltaSyncEnabled:        jsonCfg.Sync.DeltaSyncEnabled,
			AutoResolveEnabled:      jsonCfg.Sync.AutoResolveEnabled,
			LiveSyncEnabled:         jsonCfg.Sync.LiveSyncEnabled,
		},
		Live: Live{
			HeartbeatInterval: time.Duration(jsonCfg.Live.HeartbeatInterval),
			ClientTimeout:     time.Duration(jsonCfg.Live.ClientTimeout),
			SendBufferSize:    jsonCfg.Live.SendBufferSize,
		},
		Adapter: Adapter{
			WebhookURL:     jsonCfg.Adapter.WebhookURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			CleanupInterval:     time.Duration(jsonCfg.Workers.CleanupInterval),
			AutoResolveInterval: time.Duration(jsonCfg.Workers.AutoResolveInterval),
			SweepBatchSize:      jsonCfg.Workers.SweepBatchSize,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
