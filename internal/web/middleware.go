// ABOUTME: HTTP middleware for request IDs and structured access logging
// ABOUTME: Each request gets a uuid carried in the X-Request-ID response header

package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// withObservability assigns every request a uuid, exposes it as
// X-Request-ID, and logs method, path, status, and duration.
func withObservability(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		sw := wrapWriter(w)
		start := time.Now()
		next.ServeHTTP(sw, r)

		logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
