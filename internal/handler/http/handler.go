package http

import (
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
)

// Handler serves the sync REST API. Its routes are built by [Handler.Init].
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Str("transport", "http").Msg("sync handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
