package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := gzip.NewWriter(buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// echoBody replies with the request body it read and the encoding it saw.
func echoBody(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, r.Body.Close())
		w.Header().Set("X-Seen-Encoding", r.Header.Get("Content-Encoding"))
		_, _ = w.Write(body)
	})
}

func TestWithGzipRequests_InflatesBody(t *testing.T) {
	const doc = `{"appData":{"notes":["a","b"]},"localTimestamp":"2026-03-01T12:00:00Z"}`

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader(gzipped(t, doc)))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGzipRequests(echoBody(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, doc, rr.Body.String())
	assert.Empty(t, rr.Header().Get("X-Seen-Encoding"))
}

func TestWithGzipRequests_PlainBodyUntouched(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"a":1}`))
	rr := httptest.NewRecorder()

	withGzipRequests(echoBody(t)).ServeHTTP(rr, req)

	assert.Equal(t, `{"a":1}`, rr.Body.String())
}

func TestWithGzipRequests_InvalidGzip(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader("not gzip at all"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
	withGzipRequests(next).ServeHTTP(rr, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid gzip request body"}`, rr.Body.String())
}

func TestPooledGzipBody_CloseTwice(t *testing.T) {
	zr, err := gzip.NewReader(bytes.NewReader(gzipped(t, "x")))
	require.NoError(t, err)

	body := &pooledGzipBody{Reader: zr, original: io.NopCloser(nil)}
	assert.NoError(t, body.Close())
	assert.NoError(t, body.Close())
}
