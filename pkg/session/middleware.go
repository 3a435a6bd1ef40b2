package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/boubliclub/formrelay/pkg/logger"
)

// Middleware attaches an existing session to the request context, if any.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, err := m.Get(r); err == nil {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// EnsureSession makes sure every request carries a session.
func (m *Manager) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Ensure(w, r)
		if err != nil {
			m.onError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// LoggerExtractor adds the session id to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		key := KeyFromContext(ctx)
		if key == "" {
			return slog.Attr{}, false
		}
		return logger.SessionID(key), true
	}
}
