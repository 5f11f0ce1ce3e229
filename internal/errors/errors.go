package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin front-end
var (
	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrNoUpstreamSession   = errors.New("no upstream session")

	// Upstream relay errors
	ErrMissingCSRFToken = errors.New("missing csrf token")
	ErrInvalidResponse  = errors.New("invalid upstream response")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
