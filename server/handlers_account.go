package server

import (
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/upstream"
	"github.com/rs/zerolog/log"
)

// AccountHandler shows the signed-in administrator's details, fetched from the account service.
func (s *Server) AccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{"updated": queryFlag(r, "updated")}

		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			data["errors"] = []string{s.t(r, "accountLoadError")}
			s.render(w, r, http.StatusOK, ViewAccount, data)
			return
		}

		account, err := s.accounts.Details(r.Context(), creds)
		if err != nil {
			log.Err(err).Msg("Failed to load account details")
			data["errors"] = []string{s.t(r, "accountLoadError")}
			s.render(w, r, http.StatusOK, ViewAccount, data)
			return
		}

		data["username"] = account.Username
		data["email"] = account.Email
		data["day"] = account.Day
		data["month"] = account.Month
		data["year"] = account.Year
		s.render(w, r, http.StatusOK, ViewAccount, data)
	}
}

func (s *Server) AccountUpdatePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, ViewAccountUpdate, ViewData{})
	}
}

// AccountUpdateHandler validates and forwards a change of details. The password is only
// checked and sent on when a new one was entered.
func (s *Server) AccountUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := accountFormFrom(r)
		data := accountValues(form)

		creds := s.credentials(r)
		if creds.SessionCookie == "" {
			data["errors"] = []string{s.t(r, "sessionExpired")}
			s.render(w, r, http.StatusUnauthorized, ViewAccount, data)
			return
		}

		if fieldErrors := s.validator.ValidateAccountUpdate(form); len(fieldErrors) > 0 {
			data["fieldErrors"] = s.translateErrors(r, fieldErrors)
			s.render(w, r, http.StatusOK, ViewAccountUpdate, data)
			return
		}

		err := s.accounts.Update(r.Context(), creds, upstream.AccountUpdate{
			Email:           form.Email,
			Username:        form.Username,
			DateOfBirth:     form.DateOfBirth(),
			Password:        form.Password,
			ConfirmPassword: form.ConfirmPassword,
		})
		if err != nil {
			log.Err(err).Msg("Account update failed")
			data["errors"] = []string{s.t(r, "accountUpdateError")}
			s.render(w, r, http.StatusOK, ViewAccount, data)
			return
		}

		redirectSuccess(w, r, RouteAccount+"?updated=true")
	}
}
