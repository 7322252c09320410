package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/models"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		status     int
		wantBody   string
		wantStatus int
		wantErr    bool
	}{
		{
			name:       "status response",
			data:       models.HealthResponse{Status: "ok"},
			status:     http.StatusOK,
			wantBody:   `{"status":"ok"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "custom status",
			data:       map[string]string{"error": "not found"},
			status:     http.StatusNotFound,
			wantBody:   `{"error":"not found"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "nil",
			data:       nil,
			status:     http.StatusOK,
			wantBody:   `null`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unencodable falls back to 500",
			data:       make(chan int),
			status:     http.StatusOK,
			wantBody:   `{"error":"error writing data to JSON"}`,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, tt.status)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, n)
			} else {
				require.NoError(t, err)
				assert.Equal(t, rec.Body.Len(), n)
			}

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSONError(rec, "no data provided", http.StatusBadRequest)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"no data provided"}`, rec.Body.String())
}
