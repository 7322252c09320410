package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalStateRepository is the durable client-side state: the single pending
// slot and the last successful sync instant.
type LocalStateRepository interface {
	// GetPending returns the queued entry, or nil when the slot is empty.
	GetPending(ctx context.Context) (*models.PendingSyncEntry, error)
	// ReplacePending overwrites the slot with entry.
	ReplacePending(ctx context.Context, entry models.PendingSyncEntry) error
	// ClearPending empties the slot.
	ClearPending(ctx context.Context) error
	// ClearPendingIf empties the slot only if it still holds the entry queued
	// at queuedAt. It reports whether the slot was cleared.
	ClearPendingIf(ctx context.Context, queuedAt time.Time) (bool, error)
	// GetLastSync returns the last successful sync instant, or nil.
	GetLastSync(ctx context.Context) (*time.Time, error)
	// SetLastSync records the last successful sync instant.
	SetLastSync(ctx context.Context, t time.Time) error
}
