package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// BannerPageHandler shows the support banner form, prefilled with the current banner. When the
// banner cannot be loaded the default text is offered instead.
func (s *Server) BannerPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			redirectSuccess(w, r, RouteLogin)
			return
		}

		data := ViewData{"updated": queryFlag(r, "updated")}

		banner, err := s.dashboard.Banner(r.Context(), creds)
		if err != nil {
			log.Err(err).Msg("Failed to load support banner")
			data["bannerTitle"] = s.t(r, "bannerDefaultTitle")
			data["bannerBody"] = s.t(r, "bannerDefaultBody")
			data["error"] = s.t(r, "bannerLoadError")
			s.render(w, r, http.StatusOK, ViewUpdateBanner, data)
			return
		}

		data["bannerTitle"] = banner.Title
		data["bannerBody"] = banner.Content
		s.render(w, r, http.StatusOK, ViewUpdateBanner, data)
	}
}

func (s *Server) BannerUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			redirectSuccess(w, r, RouteLogin)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		title := r.FormValue("bannerTitle")
		body := r.FormValue("bannerBody")

		if err := s.dashboard.UpdateBanner(r.Context(), creds, title, body); err != nil {
			log.Err(err).Msg("Failed to update support banner")
			s.render(w, r, http.StatusInternalServerError, ViewUpdateBanner, ViewData{
				"error":       s.t(r, "bannerSaveError"),
				"bannerTitle": title,
				"bannerBody":  body,
			})
			return
		}

		redirectSuccess(w, r, RouteUpdateBanner+"?updated=true")
	}
}
