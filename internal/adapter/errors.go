package adapter

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")

	// ErrTransport wraps failures where no HTTP response was received:
	// refused connections, DNS failures and timeouts.
	ErrTransport = errors.New("transport error")
)

// ConflictError is returned by Push when the server holds a copy newer than
// the pushing device's one. It matches [ErrConflict] under [errors.Is].
type ConflictError struct {
	CloudData      models.Payload
	CloudTimestamp time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: cloud copy updated at %s", ErrConflict, e.CloudTimestamp.Format(time.RFC3339Nano))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
