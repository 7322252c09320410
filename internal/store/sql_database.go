package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/migrations"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"
)

// DB wraps a *sql.DB with the error classifier and migrations of its dialect.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies the schema migrations of the connection's dialect.
func (db *DB) Migrate() error {
	switch db.dialect {
	case dialectPostgres:
		return migrations.MigratePostgres(db.DB)
	case dialectSQLite:
		return migrations.MigrateSQLite(db.DB)
	}
	return fmt.Errorf("no migrations for dialect %q", db.dialect)
}

// wrapDBError marks retryable driver errors with [ErrStorageUnavailable].
func (db *DB) wrapDBError(sentinel, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
