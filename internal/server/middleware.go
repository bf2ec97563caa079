package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"glucolog/internal/domain"
	"glucolog/internal/logger"
)

type contextKey string

const userKey contextKey = "user"

// timeNow is swapped in tests
var timeNow = time.Now

// withUser resolves the authenticated user for the request.
// Authentication itself happens upstream; this trusts the identity
// header that layer sets.
func (s *Server) withUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get("X-User-ID"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, errors.New("missing or invalid user identity"))
			return
		}
		user, err := s.users.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusUnauthorized, errors.New("unknown user"))
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func userFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userKey).(*domain.User)
	return user
}

// withLogging logs each request with method, path and duration
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := timeNow()
		next.ServeHTTP(w, r)
		logger.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
