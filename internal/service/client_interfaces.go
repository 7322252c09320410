package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ConnectivityChecker reports whether the network is believed to be
// reachable. The sync client consults it once, at construction; later
// changes arrive through SetOnline.
type ConnectivityChecker interface {
	Online() bool
}

// ClientSyncService is the device-side half of the sync protocol. It owns the
// client status, the debounce timer, the offline slot and the conflict
// snapshot.
type ClientSyncService interface {
	// Init loads the durable last sync instant.
	Init(ctx context.Context) error

	// Upload pushes payload, queues it when offline, or short-circuits into
	// the active conflict. Uploads never interleave; a second call waits.
	Upload(ctx context.Context, payload models.Payload) models.UploadResult

	// Download pulls the cloud copy. It returns nil when not authenticated.
	Download(ctx context.Context) (*models.PullResult, error)

	// CheckForUpdates pulls and reports whether the cloud copy is newer than
	// localModified.
	CheckForUpdates(ctx context.Context, localModified time.Time) (models.CloudUpdate, error)

	// AutoSync schedules a debounced Upload of payload. Only the last call
	// within the debounce window is uploaded.
	AutoSync(payload models.Payload)

	// ProcessPendingSync delivers the queued entry, if any. The bool reports
	// whether an entry existed.
	ProcessPendingSync(ctx context.Context) (models.UploadResult, bool)

	// ResolveConflict settles the active conflict with the chosen side.
	ResolveConflict(ctx context.Context, choice models.ResolutionChoice) (models.ResolveResult, error)

	// SetOnline records a connectivity transition. Going online flushes the
	// queued entry.
	SetOnline(ctx context.Context, online bool)

	// ManualSync flushes the queued entry and then uploads payload.
	ManualSync(ctx context.Context, payload models.Payload) models.UploadResult

	Status() models.SyncStatus
	LastSync() *time.Time
	Conflict() *models.ConflictSnapshot

	// Subscribe registers fn for status changes and returns a function that
	// removes it. fn is called outside the client's lock.
	Subscribe(fn func(models.SyncStatus)) (unsubscribe func())

	// Stop cancels a scheduled debounce timer. AutoSync is a no-op afterwards.
	Stop()
}
