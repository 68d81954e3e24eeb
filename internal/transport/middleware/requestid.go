package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/frahmantamala/trackit/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags the request logger with an id: the caller's, the active
// trace id, or a fresh uuid.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
				reqID = sc.TraceID().String()
			} else {
				reqID = uuid.NewString()
			}
		}

		ctx := logger.With(r.Context(), "request_id", reqID)
		w.Header().Set(RequestIDHeader, reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
