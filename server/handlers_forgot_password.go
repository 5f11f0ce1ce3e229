package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-admin-frontend/auth"
	"github.com/rs/zerolog/log"
)

func (s *Server) ForgotPasswordPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, ViewForgotPassword, ViewData{})
	}
}

// ForgotPasswordEmailHandler asks the account service to send a passcode and remembers the email
// in the session for the following steps.
func (s *Server) ForgotPasswordEmailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.FormValue("email"))

		fail := func(fieldErrors auth.FieldErrors) {
			s.render(w, r, http.StatusOK, ViewForgotPassword, ViewData{
				"fieldErrors": fieldErrors,
				"email":       email,
			})
		}

		if fieldErrors := s.validator.ValidateEmail(email); len(fieldErrors) > 0 {
			fail(s.translateErrors(r, fieldErrors))
			return
		}

		if err := s.auth.RequestPasswordReset(r.Context(), email, string(localeOf(r))); err != nil {
			log.Err(err).Msg("Password reset request failed")
			fail(auth.FieldErrors{auth.FieldGeneral: s.upstreamMessage(r, err, "forgotPasswordError")})
			return
		}

		session := s.currentSession(r)
		session.StartPasswordReset(email)
		if err := s.saveSession(w, r, session); err != nil {
			log.Err(err).Msg("Failed to save password reset session")
			fail(auth.FieldErrors{auth.FieldGeneral: s.t(r, "forgotPasswordError")})
			return
		}

		redirectSuccess(w, r, withLang(r, RouteForgotPasswordVerifyOTP))
	}
}

func (s *Server) VerifyOTPPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, ViewVerifyOTP, ViewData{
			"sent":            queryFlag(r, "sent"),
			"fieldErrors":     auth.FieldErrors{},
			"oneTimePassword": "",
		})
	}
}

// VerifyOTPHandler checks the passcode against the email recorded by ForgotPasswordEmailHandler.
func (s *Server) VerifyOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		otp := strings.TrimSpace(r.FormValue("oneTimePassword"))

		fail := func(fieldErrors auth.FieldErrors) {
			s.render(w, r, http.StatusOK, ViewVerifyOTP, ViewData{
				"sent":            false,
				"fieldErrors":     fieldErrors,
				"oneTimePassword": otp,
			})
		}

		session := s.currentSession(r)
		if session.PendingResetEmail == "" {
			fail(auth.FieldErrors{auth.FieldGeneral: s.t(r, "sessionMissing")})
			return
		}

		if fieldErrors := s.validator.ValidateOTP(otp); len(fieldErrors) > 0 {
			fail(s.translateErrors(r, fieldErrors))
			return
		}

		if err := s.auth.VerifyOTP(r.Context(), session.PendingResetEmail, otp, string(localeOf(r))); err != nil {
			log.Err(err).Msg("Passcode verification failed")
			fail(auth.FieldErrors{auth.FieldGeneral: s.upstreamMessage(r, err, "otpInvalid")})
			return
		}

		session.VerifiedOTP = otp
		if err := s.saveSession(w, r, session); err != nil {
			log.Err(err).Msg("Failed to save password reset session")
			fail(auth.FieldErrors{auth.FieldGeneral: s.t(r, "otpInvalid")})
			return
		}

		redirectSuccess(w, r, withLang(r, RouteForgotPasswordReset))
	}
}

func (s *Server) ResendOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fail := func(message string) {
			s.render(w, r, http.StatusOK, ViewVerifyOTP, ViewData{
				"sent":            false,
				"fieldErrors":     auth.FieldErrors{auth.FieldGeneral: message},
				"oneTimePassword": "",
			})
		}

		session := s.currentSession(r)
		if session.PendingResetEmail == "" {
			fail(s.t(r, "sessionMissing"))
			return
		}

		if err := s.auth.ResendOTP(r.Context(), session.PendingResetEmail, string(localeOf(r))); err != nil {
			log.Err(err).Msg("Passcode resend failed")
			fail(s.upstreamMessage(r, err, "forgotPasswordError"))
			return
		}

		session.VerifiedOTP = ""
		if err := s.saveSession(w, r, session); err != nil {
			log.Err(err).Msg("Failed to save password reset session")
			fail(s.t(r, "forgotPasswordError"))
			return
		}

		redirectSuccess(w, r, withLang(r, RouteForgotPasswordVerifyOTP, "sent=true"))
	}
}

func (s *Server) ResetPasswordPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, ViewResetPassword, ViewData{
			"fieldErrors": auth.FieldErrors{},
		})
	}
}

// ResetPasswordHandler sets the new password once both earlier steps completed in this session.
func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		password := r.FormValue("password")
		confirmPassword := r.FormValue("confirmPassword")

		fail := func(fieldErrors auth.FieldErrors) {
			s.render(w, r, http.StatusOK, ViewResetPassword, ViewData{
				"fieldErrors": fieldErrors,
			})
		}

		session := s.currentSession(r)
		if !session.ResetReady() {
			fail(auth.FieldErrors{auth.FieldGeneral: s.t(r, "sessionMissing")})
			return
		}

		if fieldErrors := s.validator.ValidatePasswordReset(password, confirmPassword); len(fieldErrors) > 0 {
			fail(s.translateErrors(r, fieldErrors))
			return
		}

		err := s.auth.ResetPassword(r.Context(), session.PendingResetEmail, session.VerifiedOTP, password, confirmPassword, string(localeOf(r)))
		if err != nil {
			log.Err(err).Msg("Password reset failed")
			fail(auth.FieldErrors{auth.FieldGeneral: s.upstreamMessage(r, err, "resetPasswordError")})
			return
		}

		session.ClearPasswordReset()
		if err := s.saveSession(w, r, session); err != nil {
			// The password has already changed upstream.
			log.Err(err).Msg("Failed to clear password reset session")
		}

		redirectSuccess(w, r, withLang(r, RouteLogin, "passwordReset=true"))
	}
}
