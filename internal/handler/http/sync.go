package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/app"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.pull").Msg("no user ID was given")
		utils.WriteJSONError(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	response, err := h.services.SyncService.Pull(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, app.MsgFailedToDownload)
		return
	}

	if response.Data == nil {
		response.Message = app.MsgNoCloudData
	} else {
		response.Message = app.MsgDataDownloaded
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.push").Msg("no user ID was given")
		utils.WriteJSONError(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var request models.PushRequest
	if err := decodeBody(r, &request); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg(app.MsgInvalidJSON)
		utils.WriteJSONError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	payload := models.SyncPayload{AppData: request.AppData}
	if request.LocalTimestamp != nil {
		payload.LocalTimestamp = *request.LocalTimestamp
	}

	lastSync, err := h.services.SyncService.Accept(ctx, userID, payload)
	if err != nil {
		if errors.Is(err, service.ErrSyncConflict) {
			log.Info().Str("func", "*Handler.push").Str("user_id", userID).Msg("sync conflict")
		}
		writeServiceError(w, r, err, app.MsgFailedToSync)
		return
	}

	utils.WriteJSON(w, models.PushResponse{Message: app.MsgDataSynced, LastSync: lastSync}, http.StatusOK)
}

func (h *Handler) forcePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.forcePush").Msg("no user ID was given")
		utils.WriteJSONError(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var request models.ForcePushRequest
	if err := decodeBody(r, &request); err != nil {
		log.Err(err).Str("func", "*Handler.forcePush").Msg(app.MsgInvalidJSON)
		utils.WriteJSONError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	lastSync, err := h.services.SyncService.Force(ctx, userID, request.AppData)
	if err != nil {
		writeServiceError(w, r, err, app.MsgFailedToForceSync)
		return
	}

	utils.WriteJSON(w, models.PushResponse{Message: app.MsgDataForceSynced, LastSync: lastSync}, http.StatusOK)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.status").Msg("no user ID was given")
		utils.WriteJSONError(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	response, err := h.services.SyncService.Status(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err, app.MsgFailedToGetStatus)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// decodeBody decodes a JSON request body. An empty body decodes to the zero
// value so that the service reports the missing field.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
