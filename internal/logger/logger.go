// Package logger provides the request-log middleware for the API.
package logger

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware logs one line per request with a generated request id, also
// echoed back in the X-Request-Id header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		sw.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(sw, r)
		log.Printf("[INFO] %s %s -> %d (%s) req=%s", r.Method, r.URL.Path, sw.status, time.Since(start).Round(time.Millisecond), reqID)
	})
}
