package server

import (
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/auth"
	"github.com/rs/zerolog/log"
)

func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, ViewRegister, ViewData{})
	}
}

// RegisterSubmissionHandler validates the registration form and forwards it to the account
// service. Passwords are never echoed back into the form.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := accountFormFrom(r)
		data := accountValues(form)

		if fieldErrors := s.validator.ValidateRegistration(form); len(fieldErrors) > 0 {
			data["fieldErrors"] = s.translateErrors(r, fieldErrors)
			s.render(w, r, http.StatusOK, ViewRegister, data)
			return
		}

		if err := s.auth.Register(r.Context(), form, string(localeOf(r))); err != nil {
			log.Err(err).Str("username", form.Username).Msg("Registration failed")
			data["fieldErrors"] = auth.FieldErrors{auth.FieldGeneral: s.upstreamMessage(r, err, "registerError")}
			s.render(w, r, http.StatusOK, ViewRegister, data)
			return
		}

		redirectSuccess(w, r, withLang(r, RouteLogin, "created=true"))
	}
}

// accountFormFrom reads the register / account update form fields.
func accountFormFrom(r *http.Request) auth.AccountForm {
	return auth.AccountForm{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Day:             r.FormValue("date-of-birth-day"),
		Month:           r.FormValue("date-of-birth-month"),
		Year:            r.FormValue("date-of-birth-year"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}.Normalise()
}

// accountValues are the submitted values redisplayed in a form. Passwords are left out.
func accountValues(form auth.AccountForm) ViewData {
	return ViewData{
		"username": form.Username,
		"email":    form.Email,
		"day":      form.Day,
		"month":    form.Month,
		"year":     form.Year,
	}
}

func (s *Server) translateErrors(r *http.Request, fieldErrors auth.FieldErrors) auth.FieldErrors {
	return fieldErrors.Translate(func(key string) string {
		return s.t(r, key)
	})
}
