package grpc

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/internal/app"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handler is the root gRPC transport handler. It implements
// [SyncServiceServer] on top of the sync service and is created once at
// startup.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Pull implements [SyncServiceServer].
func (h *Handler) Pull(ctx context.Context, _ *Empty) (*models.PullResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	response, err := h.services.SyncService.Pull(ctx, userID)
	if err != nil {
		return nil, statusFromError(ctx, err, app.MsgFailedToDownload)
	}

	if response.Data == nil {
		response.Message = app.MsgNoCloudData
	} else {
		response.Message = app.MsgDataDownloaded
	}
	return &response, nil
}

// Push implements [SyncServiceServer].
func (h *Handler) Push(ctx context.Context, in *models.PushRequest) (*models.PushResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payload := models.SyncPayload{AppData: in.AppData}
	if in.LocalTimestamp != nil {
		payload.LocalTimestamp = *in.LocalTimestamp
	}

	lastSync, err := h.services.SyncService.Accept(ctx, userID, payload)
	if err != nil {
		return nil, statusFromError(ctx, err, app.MsgFailedToSync)
	}

	return &models.PushResponse{Message: app.MsgDataSynced, LastSync: lastSync}, nil
}

// ForcePush implements [SyncServiceServer].
func (h *Handler) ForcePush(ctx context.Context, in *models.ForcePushRequest) (*models.PushResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	lastSync, err := h.services.SyncService.Force(ctx, userID, in.AppData)
	if err != nil {
		return nil, statusFromError(ctx, err, app.MsgFailedToForceSync)
	}

	return &models.PushResponse{Message: app.MsgDataForceSynced, LastSync: lastSync}, nil
}

// Status implements [SyncServiceServer].
func (h *Handler) Status(ctx context.Context, _ *Empty) (*models.StatusResponse, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	response, err := h.services.SyncService.Status(ctx, userID)
	if err != nil {
		return nil, statusFromError(ctx, err, app.MsgFailedToGetStatus)
	}
	return &response, nil
}

func userFromContext(ctx context.Context) (string, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "no user ID was given")
	}
	return userID, nil
}
