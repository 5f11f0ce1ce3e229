package loginsession

import (
	"context"
	"time"
)

// Session is the per-browser server-side state.
type Session struct {
	ID string `json:"id"`

	// Username is set once the upstream login succeeded; empty means anonymous.
	Username string `json:"username,omitempty"`

	// Upstream session, captured from the account service login response
	UpstreamCookie string `json:"upstreamCookie,omitempty"`
	CSRFToken      string `json:"csrfToken,omitempty"`

	// Forgot-password flow state
	PendingResetEmail string `json:"pendingResetEmail,omitempty"`
	VerifiedOTP       string `json:"verifiedOtp,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticated reports whether the browser completed a login.
func (s *Session) Authenticated() bool {
	return s != nil && s.Username != ""
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type Repo interface {
	Upsert(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
}
