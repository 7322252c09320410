package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// getServerVersion answers GET /api/version with the build version as plain
// text.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := io.WriteString(w, version); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "getServerVersion").Msg("error writing version")
	}
}

// health answers GET /health. It touches no service so that load balancers
// keep routing to a server whose storage is not configured.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, models.HealthResponse{Status: "ok"}, http.StatusOK)
}
