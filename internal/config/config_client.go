package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// LogFile is the rotated log file of the client.
	LogFile string
	// Version is reported in the client's build info.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the sync server address.
	HTTPAddress string
	// RequestTimeout bounds every outbound request.
	RequestTimeout time.Duration
	// Token is the bearer credential. Empty means not authenticated.
	Token string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file holding the pending slot and last sync time.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ProbeInterval defines how often the connectivity probe runs.
	ProbeInterval time.Duration
	// WatchFile is the local data file observed for auto-sync. Empty
	// disables the watcher.
	WatchFile string
}

// ClientSync contains the synchronization behaviour toggles.
type ClientSync struct {
	// DebounceWindow is the auto-sync quiet period.
	DebounceWindow time.Duration
	// AutoSync enables debounced uploads.
	AutoSync bool
	// OfflineQueue enables keeping undelivered payloads in the pending slot.
	OfflineQueue bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the server address, timeout and credential.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Sync contains synchronization toggles.
	Sync ClientSync
}

// GetClientConfig builds and validates the client configuration from
// environment variables, the optional JSON file at jsonPath (or the CONFIG
// variable) and the client defaults. Command-line flags are owned by the
// client's command tree and are applied by the caller.
func GetClientConfig(jsonPath string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSONPath(jsonPath).
		withJSON().
		withDefaults(clientDefaults()).
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.Validate()
}

// NewClientConfig maps the fields of cfg relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			LogFile: cfg.App.LogFile,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			ProbeInterval: cfg.Workers.ProbeInterval,
			WatchFile:     cfg.Workers.WatchFile,
		},
		Sync: ClientSync{
			DebounceWindow: cfg.Sync.DebounceWindow,
			AutoSync:       !cfg.Sync.DisableAutoSync,
			OfflineQueue:   !cfg.Sync.DisableOfflineQueue,
		},
	}
}

func clientDefaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: "dev",
		},
		Storage: Storage{
			DB: DB{DSN: "go-sync-keeper.db"},
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			ProbeInterval: 30 * time.Second,
		},
		Sync: Sync{
			DebounceWindow: 5 * time.Second,
		},
	}
}
