package auth

import (
	"fmt"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
)

var NoUpstreamSessionErr = fmt.Errorf("account service issued no session cookie: %w", apperrors.ErrNoUpstreamSession)
