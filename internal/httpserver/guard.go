package httpserver

import (
	"context"
	"net/http"

	"frontend_go/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "currentSession"

// WithSession returns a new context carrying the session snapshot.
func WithSession(ctx context.Context, snap session.Snapshot) context.Context {
	return context.WithValue(ctx, sessionContextKey, snap)
}

// CurrentSession extracts the session snapshot from the request context. On
// anonymous routes it returns a zero snapshot.
func CurrentSession(r *http.Request) session.Snapshot {
	if v := r.Context().Value(sessionContextKey); v != nil {
		if snap, ok := v.(session.Snapshot); ok {
			return snap
		}
	}
	return session.Snapshot{State: session.StateAnonymous}
}

// requireSession guards every authenticated screen. While resolution is in
// flight it renders a holding page and performs no redirect; once resolved,
// unauthenticated visitors are sent to the login screen and the wrapped
// handler never runs.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := s.sessions.Snapshot()

		switch {
		case snap.State == session.StateUnresolved || snap.State == session.StateResolving:
			page := struct {
				basePage
			}{basePage{Title: "Loading", Session: snap}}
			s.tpl.Render(w, http.StatusOK, "loading", page)
		case !snap.IsAuthenticated:
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), snap)))
		}
	})
}
