package middleware

import (
	"net/http"

	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request ID to the context so every log line of the
// request carries it. An incoming X-Request-Id is trusted and propagated,
// otherwise a fresh one is generated.
func (h *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := wrap.WithRequestID(r.Context(), requestID)
		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
