// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// classifyUploadError translates the adapter's transport error into the kind
// that decides whether the payload stays queued.
func classifyUploadError(err error) models.UploadErrorKind {
	switch {
	case err == nil:
		return models.ErrKindNone
	case errors.Is(err, adapter.ErrUnauthorized):
		return models.ErrKindAuth
	case errors.Is(err, adapter.ErrBadRequest), errors.Is(err, ErrValidationNoAppData):
		return models.ErrKindValidation
	case errors.Is(err, adapter.ErrServiceUnavailable):
		return models.ErrKindConfiguration
	default:
		// transport failures, timeouts and unexpected 5xx
		return models.ErrKindTransient
	}
}
