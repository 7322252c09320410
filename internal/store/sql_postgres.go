package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

const (
	postgresMaxOpenConns    = 10
	postgresMaxIdleConns    = 4
	postgresConnMaxLifetime = 30 * time.Minute
)

// NewConnectPostgres opens the sync_blobs database through the pgx stdlib
// driver and pings it.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error opening postgres connection")
		return nil, fmt.Errorf("error opening postgres connection: %w", err)
	}
	conn.SetMaxOpenConns(postgresMaxOpenConns)
	conn.SetMaxIdleConns(postgresMaxIdleConns)
	conn.SetConnMaxLifetime(postgresConnMaxLifetime)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("postgres ping failed")
		conn.Close()
		return nil, fmt.Errorf("%w: postgres ping: %w", ErrStorageUnavailable, err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to postgres")

	return &DB{
		DB:                 conn,
		dialect:            dialectPostgres,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}, nil
}
