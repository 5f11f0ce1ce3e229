package loginsession

// UpstreamToken returns the stored upstream session cookie, or "" when the browser has no
// upstream session.
func (s *Session) UpstreamToken() string {
	if s == nil {
		return ""
	}
	return s.UpstreamCookie
}

// SetUpstreamToken overwrites the upstream session captured at login.
func (s *Session) SetUpstreamToken(cookie, csrfToken string) {
	s.UpstreamCookie = cookie
	s.CSRFToken = csrfToken
}

// StartPasswordReset records the email a reset passcode was sent to. Any previously verified
// passcode no longer applies.
func (s *Session) StartPasswordReset(email string) {
	s.PendingResetEmail = email
	s.VerifiedOTP = ""
}

// ResetReady reports whether both reset steps completed in this session.
func (s *Session) ResetReady() bool {
	return s.PendingResetEmail != "" && s.VerifiedOTP != ""
}

// ClearPasswordReset drops the forgot-password flow state.
func (s *Session) ClearPasswordReset() {
	s.PendingResetEmail = ""
	s.VerifiedOTP = ""
}
