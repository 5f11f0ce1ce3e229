package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, ViewLogin, ViewData{
			"created":       queryFlag(r, "created"),
			"passwordReset": queryFlag(r, "passwordReset"),
		})
	}
}

// LoginSubmissionHandler signs the administrator in with the account service and binds the
// upstream session to this browser.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")

		result, err := s.auth.Login(r.Context(), username, password, string(localeOf(r)))
		if err != nil {
			log.Err(err).Str("username", username).Msg("Login failed")
			s.render(w, r, http.StatusOK, ViewLogin, ViewData{
				"error":    s.upstreamMessage(r, err, "loginInvalidCredentials"),
				"username": username,
			})
			return
		}

		session := s.currentSession(r)
		if err := s.rotateSession(r.Context(), session); err != nil {
			log.Err(err).Str("username", username).Msg("Failed to rotate session")
		}
		session.Username = username
		session.SetUpstreamToken(result.SessionCookie, result.CSRFToken)
		session.ClearPasswordReset()

		if err := s.saveSession(w, r, session); err != nil {
			log.Err(err).Str("username", username).Msg("Failed to save login session")
			s.render(w, r, http.StatusOK, ViewLogin, ViewData{
				"error":    s.t(r, "loginSessionError"),
				"username": username,
			})
			return
		}

		redirectSuccess(w, r, RouteAdmin)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.destroySession(w, r); err != nil {
			log.Err(err).Msg("Failed to delete login session")
			http.Error(w, "Failed to logout", http.StatusInternalServerError)
			return
		}
		redirectSuccess(w, r, RouteLogin)
	}
}
