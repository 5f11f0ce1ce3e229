package token

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionIssuer   = "admin-frontend"
	sessionAudience = "admin-session"
	keyInfo         = "admin-session-cookie v1"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// SessionSigner signs and verifies the browser session cookie. The cookie only carries the
// session ID; everything else lives server side in the session repo.
type SessionSigner struct {
	key []byte
}

// NewSessionSigner derives an HMAC-SHA256 key from secret.
func NewSessionSigner(secret string) (*SessionSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("[token NewSessionSigner] secret is required")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("[token NewSessionSigner] deriving key: %w", err)
	}
	return &SessionSigner{key: key}, nil
}

// Sign returns a compact token binding sessionID for ttl.
func (s *SessionSigner) Sign(sessionID string, ttl time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   sessionID,
		Audience:  jwt.ClaimStrings{sessionAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the session ID it carries.
func (s *SessionSigner) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithAudience(sessionAudience),
		jwt.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidSessionToken, "verify: %v", err)
	}
	if claims.Subject == "" {
		return "", apperrors.ErrInvalidSessionToken
	}
	return claims.Subject, nil
}
