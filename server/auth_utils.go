package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-admin-frontend/i18n"
	"github.com/jrsteele09/go-admin-frontend/server/loginsession"
	"github.com/jrsteele09/go-admin-frontend/upstream"
)

const (
	// sessionCookieName is the name of the cookie carrying the signed session ID
	sessionCookieName = "admin_session"

	langCookieName   = "lang"
	langCookieMaxAge = 365 * 24 * 60 * 60
)

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, signed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetMaxSessionAge() / time.Second),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// currentSession returns the request's session, or a fresh unsaved one.
func (s *Server) currentSession(r *http.Request) *loginsession.Session {
	if session := sessionFromContext(r.Context()); session != nil {
		copied := *session
		return &copied
	}
	return s.newSession()
}

func (s *Server) newSession() *loginsession.Session {
	now := time.Now()
	return &loginsession.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.GetMaxSessionAge()),
	}
}

// saveSession stores the session, extending its expiry, and (re)issues the browser cookie.
func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, session *loginsession.Session) error {
	maxAge := s.config.GetMaxSessionAge()
	session.ExpiresAt = time.Now().Add(maxAge)

	if err := s.loginSessions.Upsert(r.Context(), *session); err != nil {
		return err
	}

	signed, err := s.signer.Sign(session.ID, maxAge)
	if err != nil {
		return err
	}
	s.setSessionCookie(w, r, signed)
	return nil
}

// rotateSession moves the session to a new ID so a pre-login cookie cannot be replayed after login.
func (s *Server) rotateSession(ctx context.Context, session *loginsession.Session) error {
	if session.ID != "" {
		if err := s.loginSessions.Delete(ctx, session.ID); err != nil {
			return err
		}
	}
	session.ID = uuid.NewString()
	return nil
}

func (s *Server) destroySession(w http.ResponseWriter, r *http.Request) error {
	if session := sessionFromContext(r.Context()); session != nil {
		if err := s.loginSessions.Delete(r.Context(), session.ID); err != nil {
			return err
		}
	}
	s.clearSessionCookie(w, r)
	return nil
}

func localeOf(r *http.Request) i18n.Locale {
	return i18n.FromContext(r.Context())
}

// credentials identify the browser to the account service.
func (s *Server) credentials(r *http.Request) upstream.Credentials {
	return upstream.Credentials{
		SessionCookie: sessionFromContext(r.Context()).UpstreamToken(),
		Lang:          string(localeOf(r)),
	}
}

// t translates key into the request's language.
func (s *Server) t(r *http.Request, key string) string {
	return s.bundle.T(localeOf(r), key)
}

// upstreamMessage prefers the account service's own text for err, falling back to the
// translated key.
func (s *Server) upstreamMessage(r *http.Request, err error, fallbackKey string) string {
	if msg := upstream.Message(err); msg != "" {
		return msg
	}
	return s.t(r, fallbackKey)
}

// redirectSuccess redirects after a successful form submission
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// withLang builds a redirect target carrying the flags followed by the request language.
func withLang(r *http.Request, path string, flags ...string) string {
	params := append(flags, "lang="+url.QueryEscape(string(localeOf(r))))
	return path + "?" + strings.Join(params, "&")
}

func queryFlag(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}
