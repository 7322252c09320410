// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

const msgNotFound = "Not found"

// notFound answers unknown routes with the JSON error body every other
// endpoint uses.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSONError(w, msgNotFound, http.StatusNotFound)
}

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler. A
// known path requested with an unregistered method gets the same 404 as an
// unknown path, so the API surface is not revealed by probing methods.
//
// Patterns are compared literally with the request path; the sync API has
// no parameterised routes.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}

		logger.FromRequest(r).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("method not registered for route")
		notFound(w, r)
	}
}
