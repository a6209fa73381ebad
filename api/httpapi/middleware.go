package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-Id"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"id":     id,
			"method": r.Method,
			"path":   r.URL.Path,
			"elapse": time.Since(start),
		}).Debug("Handle request")
	})
}

// limit rejects writes once the token bucket is drained
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && s.limiter.TakeAvailable(1) == 0 {
			writeError(w, http.StatusTooManyRequests, "write limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
