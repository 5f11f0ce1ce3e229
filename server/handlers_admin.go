package server

import (
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/dashboard"
	"github.com/rs/zerolog/log"
)

// RootHandler sends the site root to the dashboard.
func (s *Server) RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteAdmin, http.StatusFound)
	}
}

// AdminDashboardHandler renders the dashboard shell; the charts load their data from the
// statistics JSON routes.
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, ViewAdmin, ViewData{})
	}
}

// StatsJSONHandler forwards one statistics payload unchanged.
func (s *Server) StatsJSONHandler(stat dashboard.Statistic, failMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		stats, err := s.dashboard.Stats(r.Context(), creds, stat)
		if err != nil {
			log.Err(err).Str("statistic", string(stat)).Msg("Failed to load statistics")
			writeJSONError(w, http.StatusInternalServerError, failMessage)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// NotFoundHandler renders the not-found page for any unmatched route.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusNotFound, ViewNotFound, ViewData{})
	}
}

// I18nHandler returns the translations of keys in the request's language, for page scripts.
func (s *Server) I18nHandler(keys ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]string, len(keys))
		for _, key := range keys {
			out[key] = s.t(r, key)
		}
		writeJSON(w, http.StatusOK, out)
	}
}
