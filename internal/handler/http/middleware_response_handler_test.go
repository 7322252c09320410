package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusConflict)
	w.WriteHeader(http.StatusOK) // ignored

	n, err := w.Write([]byte(`{"conflict":true}`))
	require.NoError(t, err)
	_, err = w.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, http.StatusConflict, w.statusCode())
	assert.Equal(t, 17, n)
	assert.Equal(t, 18, w.size)
}

func TestResponseWriter_ImplicitHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	assert.Equal(t, http.StatusOK, w.statusCode())

	_, err := w.Write([]byte("ok"))
	require.NoError(t, err)

	assert.True(t, w.wroteHeader)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	assert.Same(t, rr, w.Unwrap())
	// the controller reaches the recorder's Flush through Unwrap
	assert.NoError(t, http.NewResponseController(w).Flush())
	assert.True(t, rr.Flushed)
}
