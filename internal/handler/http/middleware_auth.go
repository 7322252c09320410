// Package http serves the sync API over REST. Middlewares handle tracing,
// access logging, gzip and bearer authentication before a request reaches
// the sync handlers.
package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

// auth admits requests with a valid "Authorization: Bearer <token>" header
// and stores the token subject as the user ID. Every rejection is a 401 with
// a JSON error body.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSONError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			utils.WriteJSONError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("rejected bearer token")
			message := http.StatusText(http.StatusUnauthorized)
			if errors.Is(err, service.ErrTokenIsExpired) {
				message = service.ErrTokenIsExpired.Error()
			}
			utils.WriteJSONError(w, message, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), token.UserID)))
	})
}
