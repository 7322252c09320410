// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/mock"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const testUserID = "user-42"

var testSyncTime = time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC)

func newHandlerWithSyncService(svc service.SyncService) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: &service.Services{SyncService: svc},
	}
}

func injectNopLogger(r *http.Request) *http.Request {
	return r.WithContext(logger.Nop().WithContext(r.Context()))
}

// newSyncRequest builds a request that already passed the auth middleware.
func newSyncRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req = injectNopLogger(req)
	ctx := utils.WithUserID(req.Context(), testUserID)
	return req.WithContext(ctx)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// ── GET /api/sync ────────────────────────────────────────────────────────────

func TestPull_DataDownloaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	lastSync := testSyncTime
	svc.EXPECT().Pull(gomock.Any(), testUserID).Return(models.PullResponse{
		Data:     json.RawMessage(`{"notes":[1,2]}`),
		LastSync: &lastSync,
	}, nil)

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).pull(rec, newSyncRequest(http.MethodGet, "/api/sync", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Data downloaded","data":{"notes":[1,2]},"lastSync":"2026-04-01T08:30:00Z"}`, rec.Body.String())
}

func TestPull_FirstUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	svc.EXPECT().Pull(gomock.Any(), testUserID).Return(models.PullResponse{}, nil)

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).pull(rec, newSyncRequest(http.MethodGet, "/api/sync", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"No cloud data found","data":null,"lastSync":null}`, rec.Body.String())
}

func TestPull_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not configured",
			err:        service.ErrStorageNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"Cloud sync not configured","configured":false}`,
		},
		{
			name:       "storage failure",
			err:        fmt.Errorf("read sync record: %w", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to download data"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mock.NewMockSyncService(ctrl)
			svc.EXPECT().Pull(gomock.Any(), testUserID).Return(models.PullResponse{}, tt.err)

			rec := httptest.NewRecorder()
			newHandlerWithSyncService(svc).pull(rec, newSyncRequest(http.MethodGet, "/api/sync", ""))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

// ── POST /api/sync ───────────────────────────────────────────────────────────

func TestPush_Accepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	local := testSyncTime.Add(-time.Minute)

	svc.EXPECT().Accept(gomock.Any(), testUserID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, p models.SyncPayload) (time.Time, error) {
			assert.JSONEq(t, `{"a":1}`, string(p.AppData))
			assert.True(t, p.LocalTimestamp.Equal(local))
			return testSyncTime, nil
		})

	body := `{"appData":{"a":1},"localTimestamp":"` + local.Format(time.RFC3339Nano) + `"}`
	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).push(rec, newSyncRequest(http.MethodPost, "/api/sync", body))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[models.PushResponse](t, rec)
	assert.Equal(t, "Data synced to cloud", resp.Message)
	assert.True(t, resp.LastSync.Equal(testSyncTime))
}

func TestPush_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	svc.EXPECT().Accept(gomock.Any(), testUserID, gomock.Any()).Return(time.Time{}, &service.ConflictError{
		CloudData:      json.RawMessage(`{"side":"cloud"}`),
		CloudTimestamp: testSyncTime,
	})

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).push(rec, newSyncRequest(http.MethodPost, "/api/sync", `{"appData":{"side":"local"},"localTimestamp":"2026-01-01T00:00:00Z"}`))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{
		"error": "Conflict detected",
		"conflict": true,
		"cloudData": {"side":"cloud"},
		"cloudTimestamp": "2026-04-01T08:30:00Z"
	}`, rec.Body.String())
}

func TestPush_MissingFieldsReachService(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantBody string
	}{
		{name: "empty body", body: "", err: service.ErrValidationNoAppData, wantBody: `{"error":"No data provided"}`},
		{name: "missing appData", body: `{"localTimestamp":"2026-01-01T00:00:00Z"}`, err: service.ErrValidationNoAppData, wantBody: `{"error":"No data provided"}`},
		{name: "missing timestamp", body: `{"appData":{"a":1}}`, err: service.ErrValidationNoLocalTimestamp, wantBody: `{"error":"No local timestamp provided"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mock.NewMockSyncService(ctrl)
			svc.EXPECT().Accept(gomock.Any(), testUserID, gomock.Any()).Return(time.Time{}, tt.err)

			rec := httptest.NewRecorder()
			newHandlerWithSyncService(svc).push(rec, newSyncRequest(http.MethodPost, "/api/sync", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestPush_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).push(rec, newSyncRequest(http.MethodPost, "/api/sync", `{"appData":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON was passed"}`, rec.Body.String())
}

func TestPush_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	svc.EXPECT().Accept(gomock.Any(), testUserID, gomock.Any()).Return(time.Time{}, service.ErrTooManyConcurrentWrites)

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).push(rec, newSyncRequest(http.MethodPost, "/api/sync", `{"appData":1,"localTimestamp":"2026-01-01T00:00:00Z"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to sync data"}`, rec.Body.String())
}

// ── POST /api/sync/force ─────────────────────────────────────────────────────

func TestForcePush(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	svc.EXPECT().Force(gomock.Any(), testUserID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data models.Payload) (time.Time, error) {
			assert.JSONEq(t, `{"side":"local"}`, string(data))
			return testSyncTime, nil
		})

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).forcePush(rec, newSyncRequest(http.MethodPost, "/api/sync/force", `{"appData":{"side":"local"}}`))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[models.PushResponse](t, rec)
	assert.Equal(t, "Data force synced to cloud", resp.Message)
	assert.True(t, resp.LastSync.Equal(testSyncTime))
}

func TestForcePush_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "no data", err: service.ErrValidationNoAppData, wantStatus: http.StatusBadRequest},
		{name: "not configured", err: service.ErrStorageNotConfigured, wantStatus: http.StatusServiceUnavailable},
		{name: "storage failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mock.NewMockSyncService(ctrl)
			svc.EXPECT().Force(gomock.Any(), testUserID, gomock.Any()).Return(time.Time{}, tt.err)

			rec := httptest.NewRecorder()
			newHandlerWithSyncService(svc).forcePush(rec, newSyncRequest(http.MethodPost, "/api/sync/force", `{"appData":null}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ── GET /api/sync/status ─────────────────────────────────────────────────────

func TestStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	svc.EXPECT().Status(gomock.Any(), testUserID).Return(models.StatusResponse{Configured: false, User: testUserID}, nil)

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).status(rec, newSyncRequest(http.MethodGet, "/api/sync/status", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configured":false,"lastSync":null,"user":"user-42"}`, rec.Body.String())
}

func TestStatus_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockSyncService(ctrl)
	svc.EXPECT().Status(gomock.Any(), testUserID).Return(models.StatusResponse{}, errors.New("boom"))

	rec := httptest.NewRecorder()
	newHandlerWithSyncService(svc).status(rec, newSyncRequest(http.MethodGet, "/api/sync/status", ""))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to get sync status"}`, rec.Body.String())
}

func TestSyncHandlers_NoUserInContext(t *testing.T) {
	h := newHandlerWithSyncService(nil)

	for name, fn := range map[string]http.HandlerFunc{
		"pull":      h.pull,
		"push":      h.push,
		"forcePush": h.forcePush,
		"status":    h.status,
	} {
		t.Run(name, func(t *testing.T) {
			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))
			rec := httptest.NewRecorder()
			fn(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
