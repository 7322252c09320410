// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// localStateRepository keeps the client state as JSON values in the
// client_state key/value table.
type localStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalStateRepository returns a SQLite-backed [LocalStateRepository].
func NewLocalStateRepository(db *DB, log *logger.Logger) LocalStateRepository {
	return &localStateRepository{
		DB:     db,
		logger: log,
	}
}

func (r *localStateRepository) GetPending(ctx context.Context) (*models.PendingSyncEntry, error) {
	var entry models.PendingSyncEntry
	found, err := r.getStateJSON(ctx, r.DB.DB, stateKeyPending, &entry)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localStateRepository.GetPending").Msg("failed to read pending entry")
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &entry, nil
}

func (r *localStateRepository) ReplacePending(ctx context.Context, entry models.PendingSyncEntry) error {
	if err := r.setStateJSON(ctx, r.DB.DB, stateKeyPending, entry); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "localStateRepository.ReplacePending").Msg("failed to store pending entry")
		return err
	}
	return nil
}

func (r *localStateRepository) ClearPending(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, deleteStateValue, stateKeyPending); err != nil {
		return r.wrapDBError(ErrExecutingStatement, err)
	}
	return nil
}

func (r *localStateRepository) ClearPendingIf(ctx context.Context, queuedAt time.Time) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, r.wrapDBError(ErrExecutingStatement, err)
	}
	defer tx.Rollback()

	var entry models.PendingSyncEntry
	found, err := r.getStateJSON(ctx, tx, stateKeyPending, &entry)
	if err != nil {
		return false, err
	}
	if !found || !entry.QueuedAt.Equal(queuedAt) {
		return false, nil
	}

	if _, err = tx.ExecContext(ctx, deleteStateValue, stateKeyPending); err != nil {
		return false, r.wrapDBError(ErrExecutingStatement, err)
	}
	if err = tx.Commit(); err != nil {
		return false, r.wrapDBError(ErrExecutingStatement, err)
	}
	return true, nil
}

func (r *localStateRepository) GetLastSync(ctx context.Context) (*time.Time, error) {
	var t time.Time
	found, err := r.getStateJSON(ctx, r.DB.DB, stateKeyLastSync, &t)
	if err != nil || !found {
		return nil, err
	}
	return &t, nil
}

func (r *localStateRepository) SetLastSync(ctx context.Context, t time.Time) error {
	return r.setStateJSON(ctx, r.DB.DB, stateKeyLastSync, t)
}

type stateQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *localStateRepository) getStateJSON(ctx context.Context, q stateQuerier, key string, dst any) (bool, error) {
	var raw []byte
	err := q.QueryRowContext(ctx, getStateValue, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, r.wrapDBError(ErrExecutingQuery, err)
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: state %q: %w", ErrScanningRow, key, err)
	}
	return true, nil
}

func (r *localStateRepository) setStateJSON(ctx context.Context, q stateQuerier, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode state %q: %w", key, err)
	}
	if _, err = q.ExecContext(ctx, setStateValue, key, raw); err != nil {
		return r.wrapDBError(ErrExecutingStatement, err)
	}
	return nil
}

// memoryStateRepository is an in-process [LocalStateRepository].
type memoryStateRepository struct {
	mu       sync.Mutex
	pending  *models.PendingSyncEntry
	lastSync *time.Time
}

// NewMemoryStateRepository returns a [LocalStateRepository] that forgets
// everything when the process exits.
func NewMemoryStateRepository() LocalStateRepository {
	return &memoryStateRepository{}
}

func (m *memoryStateRepository) GetPending(context.Context) (*models.PendingSyncEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return nil, nil
	}
	entry := *m.pending
	return &entry, nil
}

func (m *memoryStateRepository) ReplacePending(_ context.Context, entry models.PendingSyncEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = &entry
	return nil
}

func (m *memoryStateRepository) ClearPending(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = nil
	return nil
}

func (m *memoryStateRepository) ClearPendingIf(_ context.Context, queuedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil || !m.pending.QueuedAt.Equal(queuedAt) {
		return false, nil
	}
	m.pending = nil
	return true, nil
}

func (m *memoryStateRepository) GetLastSync(context.Context) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastSync == nil {
		return nil, nil
	}
	t := *m.lastSync
	return &t, nil
}

func (m *memoryStateRepository) SetLastSync(_ context.Context, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSync = &t
	return nil
}
