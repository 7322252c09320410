// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose schema migrations of the server blob
// table (PostgreSQL) and the client state table (SQLite).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// ErrNilDB is returned when a migration is requested without a connection.
var ErrNilDB = errors.New("db is nil")

// MigratePostgres applies the server migrations to a PostgreSQL database.
func MigratePostgres(db *sql.DB) error {
	return migrate(db, "pgx", "postgres")
}

// MigrateSQLite applies the client migrations to a SQLite database.
func MigrateSQLite(db *sql.DB) error {
	return migrate(db, "sqlite3", "sqlite")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
