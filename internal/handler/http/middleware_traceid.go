package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

var traceIDs = utils.NewUUIDGenerator()

// withTraceID attaches a request-scoped logger carrying trace_id. A valid
// X-Trace-ID from the caller is reused, anything else is replaced, and the
// effective ID is echoed in the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := traceIDs.TraceIDOrNew(r.Header.Get(traceIDHeader))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(h.logger.ContextWithTraceID(r.Context(), traceID)))
	})
}
