package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/validators"
	"github.com/MKhiriev/go-sync-keeper/models"
)

var (
	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrStorageNotConfigured is returned by data operations when the server
	// runs without a storage backend.
	ErrStorageNotConfigured = errors.New("cloud sync not configured")

	ErrValidationNoAppData        = validators.ErrNoAppData
	ErrValidationNoLocalTimestamp = validators.ErrNoLocalTimestamp
	ErrValidationNoUserID         = validators.ErrNoUserID

	// ErrSyncConflict is matched by every [*ConflictError].
	ErrSyncConflict = errors.New("conflict detected")

	// ErrTooManyConcurrentWrites is returned when Accept keeps losing the
	// compare-and-swap race after all retries.
	ErrTooManyConcurrentWrites = errors.New("too many concurrent writes")
)

// Client-side errors.
var (
	// ErrNoConflict is returned by ResolveConflict when no conflict is active.
	ErrNoConflict = errors.New("no conflict to resolve")
	// ErrInvalidResolution is returned for a choice other than cloud or local.
	ErrInvalidResolution = errors.New("invalid conflict resolution choice")
	// ErrNotAuthenticated is returned by operations that need a token.
	ErrNotAuthenticated = errors.New("client is not authenticated")
)

// ConflictError reports that the stored copy is newer than the pushing
// device's copy. Storage is left untouched when it is returned.
type ConflictError struct {
	CloudData      models.Payload
	CloudTimestamp time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: cloud copy updated at %s", ErrSyncConflict, e.CloudTimestamp.Format(time.RFC3339Nano))
}

func (e *ConflictError) Unwrap() error {
	return ErrSyncConflict
}
