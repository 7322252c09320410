package store

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// Storages groups the server-side repositories. SyncRecordRepository is nil
// when no storage backend is configured; the server then still starts and
// reports itself as not configured.
type Storages struct {
	SyncRecordRepository SyncRecordRepository

	// Backend is the name of the selected backend, empty when none.
	Backend string

	closers []io.Closer
}

// NewStorages selects and initialises the blob backend named in cfg:
//  1. an incomplete configuration yields empty Storages and no error;
//  2. "postgres" connects, pings and migrates the database;
//  3. "s3" builds an S3 client (nothing is contacted until the first request);
//  4. "file" creates the root directory;
//  5. "memory" keeps records in the process.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating new storages...")

	if !cfg.Configured() {
		log.Warn().Str("func", "NewStorages").Str("backend", cfg.Backend).Msg("cloud sync storage is not configured")
		return &Storages{}, nil
	}

	storages := &Storages{Backend: cfg.Backend}

	var (
		blobs BlobStore
		err   error
	)
	switch cfg.Backend {
	case config.BackendPostgres:
		var db *DB
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		storages.closers = append(storages.closers, db)
		blobs = NewPostgresBlobStore(db, log)
	case config.BackendS3:
		blobs, err = NewS3BlobStore(ctx, cfg.S3, log)
	case config.BackendFile:
		blobs, err = NewFileBlobStore(cfg.Files.Dir, log)
	case config.BackendMemory:
		blobs = NewMemoryBlobStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s backend error: %w", cfg.Backend, err)
	}

	storages.SyncRecordRepository = NewSyncRecordRepository(blobs, log)
	return storages, nil
}

// NewStoragesWithBlobStore wires the repositories to an existing blob store.
func NewStoragesWithBlobStore(backend string, blobs BlobStore, log *logger.Logger) *Storages {
	return &Storages{
		Backend:              backend,
		SyncRecordRepository: NewSyncRecordRepository(blobs, log),
	}
}

// Configured reports whether a backend is available.
func (s *Storages) Configured() bool {
	return s != nil && s.SyncRecordRepository != nil
}

// Close releases backend connections.
func (s *Storages) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
