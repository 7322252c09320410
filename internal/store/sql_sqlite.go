package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

const (
	sqliteMemoryDSN = ":memory:"
	// sqliteOptions makes a writer wait for a concurrent CLI call instead of
	// failing with SQLITE_BUSY straight away.
	sqliteOptions = "_busy_timeout=5000&_journal_mode=WAL"
)

// NewConnectSQLite opens the client state database. The parent directory is
// created when missing.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureDBDir(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error preparing database directory")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}
	// sqlite locks the whole file; one connection keeps writers ordered
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("sqlite ping failed")
		conn.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", cfg.DSN).Msg("opened client state database")

	return &DB{
		DB:                 conn,
		dialect:            dialectSQLite,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}, nil
}

// sqliteDSN appends the connection options unless the DSN is in-memory or
// already carries its own query string.
func sqliteDSN(path string) string {
	if path == sqliteMemoryDSN || strings.Contains(path, "?") {
		return path
	}
	return path + "?" + sqliteOptions
}

func ensureDBDir(path string) error {
	if path == sqliteMemoryDSN {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("error creating DB directory: %w", err)
	}
	return nil
}
