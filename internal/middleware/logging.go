// Package middleware holds the HTTP middleware shared by all routes.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Logging writes one structured entry per request. It expects chi's RequestID
// middleware to run first so entries carry the request id.
func Logging(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			entry := log.WithField("request_id", chimw.GetReqID(r.Context()))
			entry.Debugf("request started: %s %s", r.Method, r.URL.Path)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := entry.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_ip":   r.RemoteAddr,
			})
			if status >= http.StatusInternalServerError {
				fields.Error("request failed")
				return
			}
			fields.Info("request completed")
		})
	}
}
