package server

import (
	"context"
	"net/http"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
	"github.com/jrsteele09/go-admin-frontend/server/loginsession"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the browser's loaded session
	ContextKeySession ContextKey = "session"
)

func withSession(ctx context.Context, session *loginsession.Session) context.Context {
	return context.WithValue(ctx, ContextKeySession, session)
}

// sessionFromContext returns the session loaded by SessionMiddleware, or nil.
func sessionFromContext(ctx context.Context) *loginsession.Session {
	session, _ := ctx.Value(ContextKeySession).(*loginsession.Session)
	return session
}

// SessionMiddleware loads the browser session named by the signed session cookie. Requests
// without a valid cookie carry no session.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next(w, r)
			return
		}

		sessionID, err := s.signer.Verify(cookie.Value)
		if err != nil {
			log.Debug().Err(err).Msg("Discarding invalid session cookie")
			s.clearSessionCookie(w, r)
			next(w, r)
			return
		}

		session, err := s.loginSessions.Get(r.Context(), sessionID)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrSessionNotFound) && !apperrors.Is(err, apperrors.ErrSessionExpired) {
				log.Err(err).Str("path", r.URL.Path).Msg("Failed to load session")
			}
			s.clearSessionCookie(w, r)
			next(w, r)
			return
		}

		next(w, r.WithContext(withSession(r.Context(), &session)))
	}
}

// RequireSession is middleware for routes that need a signed-in administrator. Anyone else is
// sent to the login page before any upstream call is made.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sessionFromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, RouteLogin, http.StatusFound)
			return
		}
		next(w, r)
	}
}
