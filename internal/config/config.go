// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Storage backend names accepted by [Storage.Backend].
const (
	BackendNone     = ""
	BackendS3       = "s3"
	BackendPostgres = "postgres"
	BackendFile     = "file"
	BackendMemory   = "memory"
)

// StructuredConfig is the top-level configuration container shared by the
// go-sync-keeper server and client. It aggregates all sub-configurations and
// is populated by merging values from environment variables, command-line
// flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and
	// the application version.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the blob store holding sync records
	// (server) or the local state database (client).
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's connection settings for the sync server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for client background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds client synchronization behaviour settings.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to verify (and, for the token
	// command, sign) bearer JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of every bearer JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of tokens minted by the token command.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is the path of the client's rotated log file.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// Backend selects the server blob store: "s3", "postgres", "file",
	// "memory" or empty for none. Without a backend the server still
	// starts and reports itself as not configured.
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DB holds the relational database connection settings. The server uses
	// it for the postgres backend, the client for its SQLite state file.
	DB DB `envPrefix:"DB_"`

	// Files holds the settings of the file backend.
	Files Files `envPrefix:"FILES_"`

	// S3 holds the settings of the S3/R2 backend.
	S3 S3 `envPrefix:"S3_"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC server listens,
	// in "host:port" format (e.g. "0.0.0.0:9090").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string on the server or the SQLite
	// file path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the file blob store.
type Files struct {
	// Dir is the root directory under which blobs are stored.
	// Env: STORAGE_FILES_DIR
	Dir string `env:"DIR"`
}

// S3 holds settings of an S3-compatible object store (AWS S3, Cloudflare R2,
// MinIO).
type S3 struct {
	// Env: STORAGE_S3_BUCKET
	Bucket string `env:"BUCKET"`
	// Region defaults to "auto", the value R2 expects.
	// Env: STORAGE_S3_REGION
	Region string `env:"REGION"`
	// Endpoint overrides the AWS endpoint for S3-compatible services.
	// Env: STORAGE_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: STORAGE_S3_ACCESS_KEY_ID
	AccessKeyID string `env:"ACCESS_KEY_ID"`
	// Env: STORAGE_S3_SECRET_ACCESS_KEY
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	// Prefix is prepended to every object key.
	// Env: STORAGE_S3_PREFIX
	Prefix string `env:"PREFIX"`
}

// Adapter holds the client's settings for talking to the sync server.
type Adapter struct {
	// HTTPAddress is the base address of the sync server
	// (e.g. "localhost:8080" or "https://sync.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request. A timed-out request is
	// treated as a transient failure.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer credential presented to the server.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds configuration for client background workers.
type Workers struct {
	// ProbeInterval is how often the connectivity probe polls the status
	// endpoint.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// WatchFile is the local data file whose changes trigger an auto-sync.
	// Env: WORKERS_WATCH_FILE
	WatchFile string `env:"WATCH_FILE"`
}

// Sync holds client synchronization behaviour settings.
type Sync struct {
	// DebounceWindow is the quiet period after the last change before an
	// auto-sync uploads.
	// Env: SYNC_DEBOUNCE_WINDOW
	DebounceWindow time.Duration `env:"DEBOUNCE_WINDOW"`

	// DisableAutoSync turns debounced uploads off; only explicit pushes sync.
	// Env: SYNC_DISABLE_AUTO_SYNC
	DisableAutoSync bool `env:"DISABLE_AUTO_SYNC"`

	// DisableOfflineQueue stops the client from keeping undelivered payloads.
	// Env: SYNC_DISABLE_OFFLINE_QUEUE
	DisableOfflineQueue bool `env:"DISABLE_OFFLINE_QUEUE"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources. For every field the first source that sets it
// wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in server defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults(serverDefaults()).
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func serverDefaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-sync-keeper",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
		},
		Storage: Storage{
			S3: S3{Region: "auto"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}
