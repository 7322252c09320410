package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGzipRequests transparently inflates request bodies sent with
// Content-Encoding: gzip. Large app documents are pushed compressed by
// clients that support it. Response compression is left to chi's Compress.
func withGzipRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(r.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			logger.FromRequest(r).Err(err).Str("func", "withGzipRequests").Msg("invalid gzip body")
			utils.WriteJSONError(w, ErrInvalidGzipBody.Error(), http.StatusBadRequest)
			return
		}

		original := r.Body
		r.Body = &pooledGzipBody{Reader: gzipReader, original: original}
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

// pooledGzipBody returns its reader to the pool on Close.
type pooledGzipBody struct {
	*gzip.Reader
	original io.Closer
	closed   bool
}

func (b *pooledGzipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	err := b.Reader.Close()
	gzipReaderPool.Put(b.Reader)
	if closeErr := b.original.Close(); err == nil {
		err = closeErr
	}
	return err
}
