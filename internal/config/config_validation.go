// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the merged server [StructuredConfig] can be used at
// startup. A missing or incomplete storage backend is not an error: the
// server then runs unconfigured and answers data requests with 503.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token sign key and issuer are required", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.Backend {
	case BackendNone, BackendS3, BackendPostgres, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: no listen address", ErrInvalidServerConfigs)
	}

	return nil
}

// Configured reports whether the selected blob store backend has every
// setting it needs.
func (s Storage) Configured() bool {
	switch s.Backend {
	case BackendS3:
		return s.S3.Bucket != "" &&
			s.S3.AccessKeyID != "" &&
			s.S3.SecretAccessKey != "" &&
			(s.S3.Endpoint != "" || s.S3.Region != "")
	case BackendPostgres:
		return s.DB.DSN != ""
	case BackendFile:
		return s.Files.Dir != ""
	case BackendMemory:
		return true
	default:
		return false
	}
}

// Validate checks the client configuration.
func (cfg *ClientConfig) Validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ProbeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Sync.DebounceWindow <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
