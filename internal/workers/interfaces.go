// Package workers runs the sync client's background jobs: the connectivity
// probe that drives offline and online transitions, and the data-file watcher
// that feeds debounced auto-sync.
package workers

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/models"
)

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// OnlineSetter receives connectivity transitions.
type OnlineSetter interface {
	SetOnline(ctx context.Context, online bool)
}

// AutoSyncer receives local data changes.
type AutoSyncer interface {
	AutoSync(payload models.Payload)
}
