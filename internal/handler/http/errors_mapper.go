package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/app"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrStorageNotConfigured:       http.StatusServiceUnavailable,
	service.ErrValidationNoAppData:        http.StatusBadRequest,
	service.ErrValidationNoLocalTimestamp: http.StatusBadRequest,
	service.ErrValidationNoUserID:         http.StatusBadRequest,
	service.ErrSyncConflict:               http.StatusConflict,
	service.ErrTokenIsExpired:             http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:    http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified:      http.StatusBadRequest,
}

// clientMessages holds the error text shown to callers for statuses whose
// underlying error must not leak.
var clientMessages = map[error]string{
	service.ErrStorageNotConfigured:       app.MsgNotConfigured,
	service.ErrValidationNoAppData:        app.MsgNoDataProvided,
	service.ErrValidationNoLocalTimestamp: app.MsgNoLocalTimestamp,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError renders err as a JSON error body. fallback is the message
// used for unexpected failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logger.FromRequest(r)

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		utils.WriteJSON(w, models.ConflictResponse{
			Error:          app.MsgConflictDetected,
			Conflict:       true,
			CloudData:      conflictErr.CloudData,
			CloudTimestamp: conflictErr.CloudTimestamp,
		}, http.StatusConflict)
		return
	}

	status := statusFromError(err)
	if errors.Is(err, service.ErrStorageNotConfigured) {
		configured := false
		utils.WriteJSON(w, models.ErrorResponse{
			Error:      clientMessages[service.ErrStorageNotConfigured],
			Configured: &configured,
		}, status)
		return
	}

	if status == http.StatusInternalServerError {
		log.Err(err).Msg(fallback)
		utils.WriteJSONError(w, fallback, status)
		return
	}

	message := err.Error()
	for target, msg := range clientMessages {
		if errors.Is(err, target) {
			message = msg
			break
		}
	}
	utils.WriteJSONError(w, message, status)
}
