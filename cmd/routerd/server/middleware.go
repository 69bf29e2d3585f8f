package server

// middleware.go – chi middleware, grounded on the teacher's
// cmd/xchainserver/server/middleware.go (RequestLogger/JSONHeaders), kept
// as one logrus-fields-per-request entry and a shared JSON content type.

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// RequestLogger writes one structured log line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(started).String(),
		}).Info("request handled")
	})
}

// JSONHeaders sets Content-Type application/json for all responses.
func JSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
