// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// syncClient implements ClientSyncService.
//
// Every mutable field below mu is guarded by it. Network calls are never made
// while mu is held; uploads serialize on the uploads semaphore instead.
type syncClient struct {
	adapter adapter.ServerAdapter
	state   store.LocalStateRepository
	clock   utils.Clock

	debounce     time.Duration
	autoSync     bool
	offlineQueue bool

	uploads *semaphore.Weighted

	mu        sync.Mutex
	status    models.SyncStatus
	online    bool
	lastSync  *time.Time
	conflict  *models.ConflictSnapshot
	timer     utils.Timer
	timerSeq  uint64
	stopped   bool
	listeners map[uint64]func(models.SyncStatus)
	nextID    uint64

	logger *logger.Logger
}

// NewSyncClient constructs the device-side sync state machine. connectivity
// may be nil, in which case the client starts online.
func NewSyncClient(
	serverAdapter adapter.ServerAdapter,
	state store.LocalStateRepository,
	clock utils.Clock,
	connectivity ConnectivityChecker,
	cfg config.ClientSync,
	logger *logger.Logger,
) ClientSyncService {
	online := connectivity == nil || connectivity.Online()
	status := models.SyncStatusIdle
	if !online {
		status = models.SyncStatusOffline
	}

	return &syncClient{
		adapter:      serverAdapter,
		state:        state,
		clock:        clock,
		debounce:     cfg.DebounceWindow,
		autoSync:     cfg.AutoSync,
		offlineQueue: cfg.OfflineQueue,
		uploads:      semaphore.NewWeighted(1),
		status:       status,
		online:       online,
		listeners:    make(map[uint64]func(models.SyncStatus)),
		logger:       logger,
	}
}

func (c *syncClient) Init(ctx context.Context) error {
	lastSync, err := c.state.GetLastSync(ctx)
	if err != nil {
		return fmt.Errorf("load last sync: %w", err)
	}

	c.mu.Lock()
	if c.lastSync == nil {
		c.lastSync = lastSync
	}
	c.mu.Unlock()
	return nil
}

func (c *syncClient) Upload(ctx context.Context, payload models.Payload) models.UploadResult {
	if !c.adapter.HasToken() {
		return models.UploadResult{Outcome: models.UploadSkipped}
	}
	if models.IsEmptyPayload(payload) {
		return models.UploadResult{
			Outcome: models.UploadFailed,
			ErrKind: models.ErrKindValidation,
			Err:     ErrValidationNoAppData,
		}
	}

	if res, paused := c.pauseOnConflict(payload); paused {
		return res
	}

	c.mu.Lock()
	online := c.online
	c.mu.Unlock()
	if !online {
		return c.enqueue(ctx, payload)
	}

	return c.send(ctx, payload, true)
}

// pauseOnConflict keeps the latest local payload in the conflict snapshot so
// that a later "local" resolution pushes the newest data.
func (c *syncClient) pauseOnConflict(payload models.Payload) (models.UploadResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conflict == nil {
		return models.UploadResult{}, false
	}
	c.conflict.LocalPayload = clonePayload(payload)
	return models.UploadResult{Outcome: models.UploadConflict, Conflict: c.snapshotLocked()}, true
}

func (c *syncClient) enqueue(ctx context.Context, payload models.Payload) models.UploadResult {
	if !c.offlineQueue {
		return models.UploadResult{Outcome: models.UploadSkipped}
	}

	entry := models.PendingSyncEntry{Payload: clonePayload(payload), QueuedAt: c.clock.Now()}
	if err := c.state.ReplacePending(ctx, entry); err != nil {
		c.logger.Err(err).Str("func", "syncClient.enqueue").Msg("failed to store pending payload")
		return models.UploadResult{Outcome: models.UploadFailed, ErrKind: models.ErrKindTransient, Err: err}
	}

	c.setStatus(models.SyncStatusOffline)
	return models.UploadResult{Outcome: models.UploadQueued}
}

// send pushes payload to the server. With requeue set, a retryable failure
// replaces the pending slot with payload.
func (c *syncClient) send(ctx context.Context, payload models.Payload, requeue bool) models.UploadResult {
	if err := c.uploads.Acquire(ctx, 1); err != nil {
		return models.UploadResult{Outcome: models.UploadFailed, ErrKind: models.ErrKindTransient, Err: err}
	}
	defer c.uploads.Release(1)

	// a conflict may have been raised by the upload we waited for
	if res, paused := c.pauseOnConflict(payload); paused {
		return res
	}

	c.setStatus(models.SyncStatusSyncing)

	lastSync, err := c.adapter.Push(ctx, models.SyncPayload{
		AppData:        payload,
		LocalTimestamp: c.clock.Now(),
	})
	if err == nil {
		if err = c.state.SetLastSync(ctx, lastSync); err != nil {
			c.logger.Err(err).Str("func", "syncClient.send").Msg("failed to persist last sync")
		}
		c.mu.Lock()
		c.lastSync = &lastSync
		notify := c.setStatusLocked(models.SyncStatusSynced)
		c.mu.Unlock()
		notify()

		return models.UploadResult{Outcome: models.UploadAccepted, LastSync: lastSync}
	}

	var conflictErr *adapter.ConflictError
	if errors.As(err, &conflictErr) {
		c.mu.Lock()
		c.conflict = &models.ConflictSnapshot{
			CloudPayload:   clonePayload(conflictErr.CloudData),
			CloudTimestamp: conflictErr.CloudTimestamp,
			LocalPayload:   clonePayload(payload),
		}
		snapshot := c.snapshotLocked()
		notify := c.setStatusLocked(models.SyncStatusConflict)
		c.mu.Unlock()
		notify()

		c.logger.Info().Str("func", "syncClient.send").Time("cloud_timestamp", conflictErr.CloudTimestamp).Msg("sync conflict detected")
		return models.UploadResult{Outcome: models.UploadConflict, Conflict: snapshot}
	}

	kind := classifyUploadError(err)
	c.setStatus(models.SyncStatusError)
	c.logger.Err(err).Str("func", "syncClient.send").Str("kind", string(kind)).Msg("upload failed")

	if requeue && kind.Retryable() && c.offlineQueue {
		entry := models.PendingSyncEntry{Payload: clonePayload(payload), QueuedAt: c.clock.Now()}
		if qErr := c.state.ReplacePending(ctx, entry); qErr != nil {
			c.logger.Err(qErr).Str("func", "syncClient.send").Msg("failed to store pending payload")
		}
	}

	return models.UploadResult{Outcome: models.UploadFailed, ErrKind: kind, Err: err}
}

func (c *syncClient) Download(ctx context.Context) (*models.PullResult, error) {
	if !c.adapter.HasToken() {
		return nil, nil
	}

	c.setStatus(models.SyncStatusSyncing)

	result, err := c.adapter.Pull(ctx)
	if err != nil {
		c.setStatus(models.SyncStatusError)
		return nil, fmt.Errorf("download: %w", err)
	}

	c.mu.Lock()
	if result.LastSync != nil {
		lastSync := *result.LastSync
		c.lastSync = &lastSync
	}
	notify := c.setStatusLocked(models.SyncStatusSynced)
	c.mu.Unlock()
	notify()

	if result.LastSync != nil {
		if err = c.state.SetLastSync(ctx, *result.LastSync); err != nil {
			c.logger.Err(err).Str("func", "syncClient.Download").Msg("failed to persist last sync")
		}
	}

	return &result, nil
}

func (c *syncClient) CheckForUpdates(ctx context.Context, localModified time.Time) (models.CloudUpdate, error) {
	result, err := c.Download(ctx)
	if err != nil {
		return models.CloudUpdate{}, err
	}
	if result == nil || models.IsEmptyPayload(result.Data) || result.LastSync == nil {
		return models.CloudUpdate{}, nil
	}

	return models.CloudUpdate{
		Newer:    result.LastSync.After(localModified),
		Data:     result.Data,
		LastSync: result.LastSync,
	}, nil
}

func (c *syncClient) AutoSync(payload models.Payload) {
	if !c.autoSync || !c.adapter.HasToken() {
		return
	}

	data := clonePayload(payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerSeq++
	seq := c.timerSeq
	c.timer = c.clock.AfterFunc(c.debounce, func() {
		c.fireAutoSync(seq, data)
	})
}

func (c *syncClient) fireAutoSync(seq uint64, payload models.Payload) {
	c.mu.Lock()
	if c.stopped || seq != c.timerSeq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	res := c.Upload(c.logger.WithContext(context.Background()), payload)
	c.logger.Debug().Str("func", "syncClient.fireAutoSync").Str("outcome", string(res.Outcome)).Msg("debounced upload finished")
}

func (c *syncClient) ProcessPendingSync(ctx context.Context) (models.UploadResult, bool) {
	if !c.adapter.HasToken() {
		return models.UploadResult{Outcome: models.UploadSkipped}, false
	}

	entry, err := c.state.GetPending(ctx)
	if err != nil {
		c.logger.Err(err).Str("func", "syncClient.ProcessPendingSync").Msg("failed to read pending payload")
		return models.UploadResult{Outcome: models.UploadFailed, ErrKind: models.ErrKindTransient, Err: err}, false
	}
	if entry == nil {
		return models.UploadResult{}, false
	}

	c.mu.Lock()
	online := c.online
	c.mu.Unlock()
	if !online {
		return models.UploadResult{Outcome: models.UploadQueued}, true
	}

	var res models.UploadResult
	if r, paused := c.pauseOnConflict(entry.Payload); paused {
		res = r
	} else {
		res = c.send(ctx, entry.Payload, false)
	}

	if res.Terminal() {
		// an entry queued while we were sending must survive
		if _, err = c.state.ClearPendingIf(ctx, entry.QueuedAt); err != nil {
			c.logger.Err(err).Str("func", "syncClient.ProcessPendingSync").Msg("failed to clear pending payload")
		}
	}

	return res, true
}

func (c *syncClient) ResolveConflict(ctx context.Context, choice models.ResolutionChoice) (models.ResolveResult, error) {
	c.mu.Lock()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if snapshot == nil {
		return models.ResolveResult{}, ErrNoConflict
	}

	switch choice {
	case models.ResolveWithCloud:
		c.mu.Lock()
		c.conflict = nil
		lastSync := snapshot.CloudTimestamp
		c.lastSync = &lastSync
		notify := c.setStatusLocked(models.SyncStatusSynced)
		c.mu.Unlock()
		notify()

		if err := c.state.SetLastSync(ctx, snapshot.CloudTimestamp); err != nil {
			c.logger.Err(err).Str("func", "syncClient.ResolveConflict").Msg("failed to persist last sync")
		}

		return models.ResolveResult{
			Choice:       choice,
			AdoptPayload: snapshot.CloudPayload,
			LastSync:     snapshot.CloudTimestamp,
		}, nil

	case models.ResolveWithLocal:
		return c.resolveWithLocal(ctx, snapshot)

	default:
		return models.ResolveResult{}, fmt.Errorf("%w: %q", ErrInvalidResolution, choice)
	}
}

func (c *syncClient) resolveWithLocal(ctx context.Context, snapshot *models.ConflictSnapshot) (models.ResolveResult, error) {
	if err := c.uploads.Acquire(ctx, 1); err != nil {
		return models.ResolveResult{}, err
	}
	defer c.uploads.Release(1)

	// LocalPayload may have been replaced while we waited
	c.mu.Lock()
	if c.conflict != nil {
		snapshot = c.snapshotLocked()
	}
	c.conflict = nil
	notify := c.setStatusLocked(models.SyncStatusSyncing)
	c.mu.Unlock()
	notify()

	lastSync, err := c.adapter.ForcePush(ctx, snapshot.LocalPayload)
	if err != nil {
		c.setStatus(models.SyncStatusError)
		c.logger.Err(err).Str("func", "syncClient.resolveWithLocal").Msg("force push failed")

		if kind := classifyUploadError(err); kind.Retryable() && c.offlineQueue {
			entry := models.PendingSyncEntry{Payload: snapshot.LocalPayload, QueuedAt: c.clock.Now()}
			if qErr := c.state.ReplacePending(ctx, entry); qErr != nil {
				c.logger.Err(qErr).Str("func", "syncClient.resolveWithLocal").Msg("failed to store pending payload")
			}
		}
		return models.ResolveResult{Choice: models.ResolveWithLocal}, fmt.Errorf("force push: %w", err)
	}

	if err = c.state.SetLastSync(ctx, lastSync); err != nil {
		c.logger.Err(err).Str("func", "syncClient.resolveWithLocal").Msg("failed to persist last sync")
	}

	c.mu.Lock()
	c.lastSync = &lastSync
	notify = c.setStatusLocked(models.SyncStatusSynced)
	c.mu.Unlock()
	notify()

	return models.ResolveResult{Choice: models.ResolveWithLocal, LastSync: lastSync}, nil
}

func (c *syncClient) SetOnline(ctx context.Context, online bool) {
	c.mu.Lock()
	was := c.online
	c.online = online

	notify := func() {}
	switch {
	case was && !online:
		notify = c.setStatusLocked(models.SyncStatusOffline)
	case !was && online && c.status == models.SyncStatusOffline:
		notify = c.setStatusLocked(models.SyncStatusIdle)
	}
	c.mu.Unlock()
	notify()

	if !was && online {
		res, had := c.ProcessPendingSync(ctx)
		if had {
			c.logger.Info().Str("func", "syncClient.SetOnline").Str("outcome", string(res.Outcome)).Msg("flushed pending payload")
		}
	}
}

func (c *syncClient) ManualSync(ctx context.Context, payload models.Payload) models.UploadResult {
	res, had := c.ProcessPendingSync(ctx)
	if had && (res.Outcome == models.UploadConflict || !res.Terminal()) {
		return res
	}
	if had && models.IsEmptyPayload(payload) {
		return res
	}

	return c.Upload(ctx, payload)
}

func (c *syncClient) Status() models.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *syncClient) LastSync() *time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastSync == nil {
		return nil
	}
	lastSync := *c.lastSync
	return &lastSync
}

func (c *syncClient) Conflict() *models.ConflictSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *syncClient) Subscribe(fn func(models.SyncStatus)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *syncClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *syncClient) setStatus(status models.SyncStatus) {
	c.mu.Lock()
	notify := c.setStatusLocked(status)
	c.mu.Unlock()
	notify()
}

// setStatusLocked switches the status unless a conflict is active, which
// only resolution may leave. The returned function notifies listeners and
// must be called after mu is released.
func (c *syncClient) setStatusLocked(status models.SyncStatus) func() {
	if c.conflict != nil && status != models.SyncStatusConflict {
		return func() {}
	}
	if c.status == status {
		return func() {}
	}
	c.status = status

	listeners := make([]func(models.SyncStatus), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	return func() {
		for _, fn := range listeners {
			fn(status)
		}
	}
}

func (c *syncClient) snapshotLocked() *models.ConflictSnapshot {
	if c.conflict == nil {
		return nil
	}
	return &models.ConflictSnapshot{
		CloudPayload:   clonePayload(c.conflict.CloudPayload),
		CloudTimestamp: c.conflict.CloudTimestamp,
		LocalPayload:   clonePayload(c.conflict.LocalPayload),
	}
}

func clonePayload(p models.Payload) models.Payload {
	if p == nil {
		return nil
	}
	return append(models.Payload(nil), p...)
}
