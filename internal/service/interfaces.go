package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the server side of the sync protocol. Every method works on
// the record of a single authenticated user.
type SyncService interface {
	// Pull returns the stored record. A user who never pushed gets nil Data
	// and LastSync.
	Pull(ctx context.Context, userID string) (models.PullResponse, error)
	// Accept stores payload unless the stored copy is strictly newer than
	// payload.LocalTimestamp, in which case a [*ConflictError] is returned.
	Accept(ctx context.Context, userID string, payload models.SyncPayload) (time.Time, error)
	// Force stores data unconditionally.
	Force(ctx context.Context, userID string, data models.Payload) (time.Time, error)
	// Status reports whether storage is configured and the last sync instant.
	Status(ctx context.Context, userID string) (models.StatusResponse, error)
	// Configured reports whether a storage backend is available.
	Configured() bool
}

type AuthService interface {
	CreateToken(ctx context.Context, userID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
