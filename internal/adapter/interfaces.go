// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-sync-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the sync client
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// requests. An empty token logs the client out.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// HasToken reports whether the client is authenticated.
	HasToken() bool

	// Pull fetches the user's stored record. A user who never pushed gets a
	// result with nil Data and LastSync.
	Pull(ctx context.Context) (models.PullResult, error)

	// Push sends a conditional write. A newer cloud copy yields a
	// [*ConflictError] that matches [ErrConflict].
	Push(ctx context.Context, payload models.SyncPayload) (time.Time, error)

	// ForcePush overwrites the cloud copy unconditionally.
	ForcePush(ctx context.Context, data models.Payload) (time.Time, error)

	// Status fetches the cheap reachability and freshness probe.
	Status(ctx context.Context) (models.StatusResponse, error)

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)
}
