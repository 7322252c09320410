package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/internal/workers"
	"github.com/MKhiriev/go-sync-keeper/models"
)

var (
	// ErrNoDataFile is returned by operations that need the local data file
	// when none is configured.
	ErrNoDataFile = errors.New("no data file configured")
	// ErrNotAuthenticated is returned when no bearer token is configured.
	ErrNotAuthenticated = errors.New("not authenticated: no token configured")
)

type App struct {
	cfg *config.ClientConfig

	storages *store.ClientStorages
	adapter  adapter.ServerAdapter
	probe    *workers.ConnectivityProbe
	services *service.ClientServices

	// userID is the unverified token subject, used for display only.
	userID string

	logger *logger.Logger
}

// NewApp opens local state, builds the server adapter and the sync client.
// The connectivity probe runs once before the sync client is created so that
// the client starts in the right online or offline state.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	userID := tokenSubject(cfg.Adapter.Token)
	if userID != "" {
		logger = logger.GetChildLogger()
		logger.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user_id", userID)
		})
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	probe := workers.NewConnectivityProbe(serverAdapter, cfg.Workers.ProbeInterval, logger)
	probe.Check(ctx)

	services := service.NewClientServices(storages, serverAdapter, probe, cfg, logger)
	probe.Notify(services.SyncService)

	if err = services.SyncService.Init(ctx); err != nil {
		services.SyncService.Stop()
		storages.Close()
		return nil, fmt.Errorf("init sync client: %w", err)
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		adapter:  serverAdapter,
		probe:    probe,
		services: services,
		userID:   userID,
		logger:   logger,
	}, nil
}

// tokenSubject reads the "sub" claim without checking the signature. Only
// the server can verify a token.
func tokenSubject(token string) string {
	if token == "" {
		return ""
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return ""
	}
	return userID
}

func (a *App) Close() error {
	a.services.SyncService.Stop()
	return a.storages.Close()
}

// Run starts a sync session: it flushes the pending slot, adopts a newer
// cloud copy into the data file, then keeps the probe and the file watcher
// running until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	sync := a.services.SyncService

	unsubscribe := sync.Subscribe(func(status models.SyncStatus) {
		a.logger.Info().Str("status", status.String()).Msg("sync status changed")
	})
	defer unsubscribe()

	if result, had := sync.ProcessPendingSync(ctx); had {
		a.logger.Info().Str("outcome", string(result.Outcome)).Msg("pending sync processed")
	}

	if a.cfg.Workers.WatchFile != "" {
		if err := a.adoptNewerCloudCopy(ctx); err != nil {
			a.logger.Err(err).Msg("error checking for cloud updates")
		}
	}

	jobs := []workers.Worker{a.probe}
	if a.cfg.Workers.WatchFile != "" {
		watcher, err := workers.NewFileWatcher(a.cfg.Workers.WatchFile, sync, a.logger)
		if err != nil {
			return fmt.Errorf("start file watcher: %w", err)
		}
		jobs = append(jobs, watcher)
	}

	a.logger.Info().Str("file", a.cfg.Workers.WatchFile).Msg("sync session started")
	workers.NewWorkers(jobs...).Run(ctx)
	a.logger.Info().Msg("sync session stopped")

	return nil
}

func (a *App) adoptNewerCloudCopy(ctx context.Context) error {
	var localModified time.Time
	info, err := os.Stat(a.cfg.Workers.WatchFile)
	switch {
	case err == nil:
		localModified = info.ModTime()
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	update, err := a.services.SyncService.CheckForUpdates(ctx, localModified)
	if err != nil {
		return err
	}
	if !update.Newer {
		return nil
	}

	a.logger.Info().Time("cloud_last_sync", *update.LastSync).Msg("cloud copy is newer, adopting")
	return a.writeDataFile(update.Data)
}

// Push uploads payload, flushing a pending entry first.
func (a *App) Push(ctx context.Context, payload models.Payload) models.UploadResult {
	return a.services.SyncService.ManualSync(ctx, payload)
}

// Pull downloads the cloud copy. When writeFile is set the data file is
// replaced with it.
func (a *App) Pull(ctx context.Context, writeFile bool) (*models.PullResult, error) {
	result, err := a.services.SyncService.Download(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNotAuthenticated
	}
	if writeFile && !models.IsEmptyPayload(result.Data) {
		if err = a.writeDataFile(result.Data); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Resolve uploads payload and, if the server reports a conflict, settles it
// with choice. A cloud win is written to the data file when one is
// configured.
func (a *App) Resolve(ctx context.Context, payload models.Payload, choice models.ResolutionChoice) (models.UploadResult, *models.ResolveResult, error) {
	sync := a.services.SyncService

	upload := sync.Upload(ctx, payload)
	if upload.Outcome != models.UploadConflict {
		return upload, nil, nil
	}

	resolved, err := sync.ResolveConflict(ctx, choice)
	if err != nil {
		return upload, nil, err
	}
	if resolved.Choice == models.ResolveWithCloud && a.cfg.Workers.WatchFile != "" {
		if err = a.writeDataFile(resolved.AdoptPayload); err != nil {
			return upload, &resolved, err
		}
	}
	return upload, &resolved, nil
}

// SessionStatus is the combined local and cloud view printed by the status
// command.
type SessionStatus struct {
	Online        bool
	Authenticated bool
	UserID        string
	LocalLastSync *time.Time
	Pending       *models.PendingSyncEntry
	Cloud         *models.StatusResponse
	CloudErr      error
}

func (a *App) Status(ctx context.Context) (SessionStatus, error) {
	pending, err := a.storages.StateRepository.GetPending(ctx)
	if err != nil {
		return SessionStatus{}, fmt.Errorf("read pending slot: %w", err)
	}

	st := SessionStatus{
		Online:        a.probe.Online(),
		Authenticated: a.adapter.HasToken(),
		UserID:        a.userID,
		LocalLastSync: a.services.SyncService.LastSync(),
		Pending:       pending,
	}

	if st.Online && st.Authenticated {
		cloud, cloudErr := a.adapter.Status(ctx)
		if cloudErr != nil {
			st.CloudErr = cloudErr
		} else {
			st.Cloud = &cloud
		}
	}
	return st, nil
}

// Pending returns the queued entry, or nil.
func (a *App) Pending(ctx context.Context) (*models.PendingSyncEntry, error) {
	return a.storages.StateRepository.GetPending(ctx)
}

// FlushPending delivers the queued entry if there is one.
func (a *App) FlushPending(ctx context.Context) (models.UploadResult, bool) {
	return a.services.SyncService.ProcessPendingSync(ctx)
}

// DropPending discards the queued entry.
func (a *App) DropPending(ctx context.Context) error {
	return a.storages.StateRepository.ClearPending(ctx)
}

// ReadDataFile returns the content of the configured data file.
func (a *App) ReadDataFile() (models.Payload, error) {
	if a.cfg.Workers.WatchFile == "" {
		return nil, ErrNoDataFile
	}
	data, err := os.ReadFile(a.cfg.Workers.WatchFile)
	if err != nil {
		return nil, err
	}
	return models.Payload(data), nil
}

// writeDataFile replaces the data file atomically so that readers and the
// file watcher never see a partial document.
func (a *App) writeDataFile(data models.Payload) error {
	path := a.cfg.Workers.WatchFile
	if path == "" {
		return ErrNoDataFile
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
