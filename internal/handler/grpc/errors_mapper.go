package grpc

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-sync-keeper/internal/app"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/models"
)

var errorCodeMap = map[error]codes.Code{
	service.ErrStorageNotConfigured:       codes.Unavailable,
	service.ErrValidationNoAppData:        codes.InvalidArgument,
	service.ErrValidationNoLocalTimestamp: codes.InvalidArgument,
	service.ErrValidationNoUserID:         codes.InvalidArgument,
	service.ErrTokenIsExpired:             codes.Unauthenticated,
	service.ErrTokenIsExpiredOrInvalid:    codes.Unauthenticated,
}

// statusFromError converts a service error into a gRPC status. A conflict is
// reported as Aborted whose message is the JSON conflict body.
func statusFromError(ctx context.Context, err error, fallback string) error {
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		body, mErr := json.Marshal(models.ConflictResponse{
			Error:          app.MsgConflictDetected,
			Conflict:       true,
			CloudData:      conflictErr.CloudData,
			CloudTimestamp: conflictErr.CloudTimestamp,
		})
		if mErr != nil {
			return status.Error(codes.Internal, fallback)
		}
		return status.Error(codes.Aborted, string(body))
	}

	for target, code := range errorCodeMap {
		if errors.Is(err, target) {
			return status.Error(code, err.Error())
		}
	}

	logger.FromContext(ctx).Err(err).Msg(fallback)
	return status.Error(codes.Internal, fallback)
}

// ConflictFromStatus decodes the conflict body carried by an Aborted status.
func ConflictFromStatus(err error) (models.ConflictResponse, bool) {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Aborted {
		return models.ConflictResponse{}, false
	}

	var conflict models.ConflictResponse
	if json.Unmarshal([]byte(st.Message()), &conflict) != nil || !conflict.Conflict {
		return models.ConflictResponse{}, false
	}
	return conflict, true
}
