package token_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
	"github.com/jrsteele09/go-admin-frontend/token"
	"github.com/stretchr/testify/require"
)

func TestSessionSigner_RoundTrip(t *testing.T) {
	s, err := token.NewSessionSigner("secret")
	require.NoError(t, err)

	raw, err := s.Sign("session-123", time.Minute)
	require.NoError(t, err)

	id, err := s.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "session-123", id)
}

func TestSessionSigner_RejectsForeignKey(t *testing.T) {
	a, err := token.NewSessionSigner("secret-a")
	require.NoError(t, err)
	b, err := token.NewSessionSigner("secret-b")
	require.NoError(t, err)

	raw, err := a.Sign("session-123", time.Minute)
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, apperrors.ErrInvalidSessionToken)
}

func TestSessionSigner_Expired(t *testing.T) {
	s, err := token.NewSessionSigner("secret")
	require.NoError(t, err)

	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return issued }
	t.Cleanup(func() { token.NowTimeFunc = time.Now })

	raw, err := s.Sign("session-123", time.Minute)
	require.NoError(t, err)

	token.NowTimeFunc = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = s.Verify(raw)
	require.ErrorIs(t, err, apperrors.ErrInvalidSessionToken)
}

func TestSessionSigner_Garbage(t *testing.T) {
	s, err := token.NewSessionSigner("secret")
	require.NoError(t, err)

	_, err = s.Verify("not-a-token")
	require.ErrorIs(t, err, apperrors.ErrInvalidSessionToken)
}

func TestNewSessionSigner_RequiresSecret(t *testing.T) {
	_, err := token.NewSessionSigner("")
	require.Error(t, err)
}
