package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id back to the client
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags every request with an id and logs its outcome
func RequestLogger(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if p := recover(); p != nil {
					log.WithField("request_id", requestID).Errorf("Panic serving %s %s: %v", r.Method, r.URL.Path, p)
					http.Error(rec, `{"error":"internal server error"}`, http.StatusInternalServerError)
				}
				entry := log.WithFields(logrus.Fields{
					"request_id": requestID,
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     rec.status,
					"duration":   time.Since(start).String(),
				})
				if rec.status >= http.StatusInternalServerError {
					entry.Error("Request failed")
				} else {
					entry.Info("Request handled")
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
