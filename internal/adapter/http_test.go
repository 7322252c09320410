// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second, Token: "tok"}

	a, err := NewHTTPServerAdapter(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://sync.example.com/ ", want: "https://sync.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToken(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	assert.True(t, a.HasToken())
	assert.Equal(t, "tok", a.Token())

	a.SetToken("  other ")
	assert.Equal(t, "other", a.Token())

	a.SetToken("")
	assert.False(t, a.HasToken())
}

// ── Pull ────────────────────────────────────────────────────────────────────

func TestPull_Success(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sync", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.PullResponse{Message: "Data downloaded", Data: models.Payload(`{"a":1}`), LastSync: &ts})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Pull(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got.Data))
	require.NotNil(t, got.LastSync)
	assert.True(t, ts.Equal(*got.LastSync))
}

func TestPull_FirstUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.PullResponse{Message: "No cloud data found"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Pull(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.Data)
	assert.Nil(t, got.LastSync)
}

func TestPull_NotConfigured(t *testing.T) {
	configured := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Cloud sync not configured", Configured: &configured})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Pull(context.Background())
	require.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Contains(t, err.Error(), "Cloud sync not configured")
}

func TestPull_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).Pull(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_Success(t *testing.T) {
	local := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	assigned := local.Add(time.Second)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync", r.URL.Path)

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.JSONEq(t, `{"x":true}`, string(req.AppData))
		require.NotNil(t, req.LocalTimestamp)
		assert.True(t, local.Equal(*req.LocalTimestamp))

		writeJSON(t, w, http.StatusOK, models.PushResponse{Message: "Data synced to cloud", LastSync: assigned})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Push(context.Background(), models.SyncPayload{
		AppData:        models.Payload(`{"x":true}`),
		LocalTimestamp: local,
	})
	require.NoError(t, err)
	assert.True(t, assigned.Equal(got))
}

func TestPush_Conflict(t *testing.T) {
	cloudTS := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, models.ConflictResponse{
			Error:          "Conflict detected",
			Conflict:       true,
			CloudData:      models.Payload(`{"cloud":1}`),
			CloudTimestamp: cloudTS,
		})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Push(context.Background(), models.SyncPayload{AppData: models.Payload(`1`), LocalTimestamp: time.Now()})
	require.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.JSONEq(t, `{"cloud":1}`, string(conflict.CloudData))
	assert.True(t, cloudTS.Equal(conflict.CloudTimestamp))
}

func TestPush_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "unavailable", status: http.StatusServiceUnavailable, want: ErrServiceUnavailable},
		{name: "internal", status: http.StatusInternalServerError, want: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, want: ErrInternalServerError},
		{name: "conflict without body", status: http.StatusConflict, want: ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorResponse{Error: "nope"})
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Push(context.Background(), models.SyncPayload{AppData: models.Payload(`1`)})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPush_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestAdapter(t, srv.URL).Push(ctx, models.SyncPayload{AppData: models.Payload(`1`)})
	assert.ErrorIs(t, err, ErrTransport)
}

// ── ForcePush ───────────────────────────────────────────────────────────────

func TestForcePush_Success(t *testing.T) {
	assigned := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/force", r.URL.Path)

		var req map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.JSONEq(t, `[1,2]`, string(req["appData"]))
		_, hasTimestamp := req["localTimestamp"]
		assert.False(t, hasTimestamp)

		writeJSON(t, w, http.StatusOK, models.PushResponse{Message: "Data force synced to cloud", LastSync: assigned})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ForcePush(context.Background(), models.Payload(`[1,2]`))
	require.NoError(t, err)
	assert.True(t, assigned.Equal(got))
}

// ── Status / Version ────────────────────────────────────────────────────────

func TestStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/status", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.StatusResponse{Configured: true, User: "u1"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Configured)
	assert.Equal(t, "u1", got.User)
	assert.Nil(t, got.LastSync)
}

func TestStatus_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, models.ErrorResponse{Error: "token is expired or invalid"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Status(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}
