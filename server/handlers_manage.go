package server

import (
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/internal/pagination"
	"github.com/rs/zerolog/log"
)

// ManageAccountsHandler lists every account, one page at a time.
func (s *Server) ManageAccountsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			redirectSuccess(w, r, RouteLogin)
			return
		}

		data := ViewData{"deleted": queryFlag(r, "deleted")}

		accounts, err := s.accounts.All(r.Context(), creds)
		if err != nil {
			log.Err(err).Msg("Error fetching managed accounts")
			data["pages"] = []int{1}
			data["currentPage"] = 1
			data["hasAccounts"] = false
			data["error"] = s.t(r, "manageLoadError")
			s.render(w, r, http.StatusOK, ViewManageAccounts, data)
			return
		}

		page := pagination.Paginate(len(accounts), pagination.PageSize, r.URL.Query().Get("page"))
		data["pages"] = page.Pages
		data["currentPage"] = page.Current
		data["totalPages"] = page.TotalPages
		data["hasAccounts"] = len(accounts) > 0
		data["accounts"] = rows(pagination.Slice(accounts, page))
		s.render(w, r, http.StatusOK, ViewManageAccounts, data)
	}
}

func (s *Server) AllAccountsJSONHandler() http.HandlerFunc {
	return s.listJSONHandler(s.accounts.All, "Failed to load accounts")
}

func (s *Server) DeleteAccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		accountID := r.PathValue("id")
		if err := s.accounts.Delete(r.Context(), creds, accountID); err != nil {
			log.Err(err).Str("account_id", accountID).Msg("Error deleting account")
			s.render(w, r, http.StatusInternalServerError, ViewManageAccounts, ViewData{
				"deleted":     false,
				"pages":       []int{1},
				"currentPage": 1,
				"hasAccounts": false,
				"error":       s.t(r, "manageDeleteError"),
			})
			return
		}

		log.Info().Str("account_id", accountID).Msg("Account deleted")
		redirectSuccess(w, r, RouteManageAccounts+"?deleted=true")
	}
}
