package users

import (
	"context"

	"github.com/jrsteele09/go-admin-frontend/upstream"
)

// AccountRepo is the account service as seen by the admin console. Every call is made on behalf
// of one browser, identified by its credentials.
type AccountRepo interface {
	Details(ctx context.Context, creds upstream.Credentials) (Account, error)
	Update(ctx context.Context, creds upstream.Credentials, update upstream.AccountUpdate) error

	All(ctx context.Context, creds upstream.Credentials) (upstream.List, error)
	Delete(ctx context.Context, creds upstream.Credentials, accountID string) error

	Pending(ctx context.Context, creds upstream.Credentials) (upstream.List, error)
	Approve(ctx context.Context, creds upstream.Credentials, requestID string) error
	Reject(ctx context.Context, creds upstream.Credentials, requestID string) error
}
