package users

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/upstream"
	"golang.org/x/sync/errgroup"
)

// Service implements AccountRepo against the account service.
type Service struct {
	client *upstream.Client
}

var _ AccountRepo = (*Service)(nil)

func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

// Details loads the profile fields concurrently; the first failure cancels the others.
func (s *Service) Details(ctx context.Context, creds upstream.Credentials) (Account, error) {
	conn, err := s.client.OpenFor(creds)
	if err != nil {
		return Account{}, err
	}

	var account Account
	g, gctx := errgroup.WithContext(ctx)
	fetch := func(path string, dst *string) {
		g.Go(func() error {
			v, err := conn.GetText(gctx, path)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		})
	}
	fetch(upstream.PathAccountUsername, &account.Username)
	fetch(upstream.PathAccountEmail, &account.Email)
	fetch(upstream.PathAccountDobDay, &account.Day)
	fetch(upstream.PathAccountDobMonth, &account.Month)
	fetch(upstream.PathAccountDobYear, &account.Year)

	if err := g.Wait(); err != nil {
		return Account{}, err
	}
	return account, nil
}

func (s *Service) Update(ctx context.Context, creds upstream.Credentials, update upstream.AccountUpdate) error {
	return s.relay(ctx, creds, http.MethodPost, upstream.PathAccountUpdate, update)
}

func (s *Service) All(ctx context.Context, creds upstream.Credentials) (upstream.List, error) {
	return s.list(ctx, creds, upstream.PathAccountAll)
}

func (s *Service) Delete(ctx context.Context, creds upstream.Credentials, accountID string) error {
	return s.relay(ctx, creds, http.MethodDelete, upstream.AccountPath(accountID), nil)
}

func (s *Service) Pending(ctx context.Context, creds upstream.Credentials) (upstream.List, error) {
	return s.list(ctx, creds, upstream.PathAccountPending)
}

func (s *Service) Approve(ctx context.Context, creds upstream.Credentials, requestID string) error {
	return s.relay(ctx, creds, http.MethodPost, upstream.ApprovePath(requestID), struct{}{})
}

func (s *Service) Reject(ctx context.Context, creds upstream.Credentials, requestID string) error {
	return s.relay(ctx, creds, http.MethodPost, upstream.RejectPath(requestID), struct{}{})
}

func (s *Service) list(ctx context.Context, creds upstream.Credentials, path string) (upstream.List, error) {
	conn, err := s.client.OpenFor(creds)
	if err != nil {
		return nil, err
	}
	var items upstream.List
	if err := conn.Get(ctx, path, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = upstream.List{}
	}
	return items, nil
}

func (s *Service) relay(ctx context.Context, creds upstream.Credentials, method, path string, body any) error {
	conn, err := s.client.OpenFor(creds)
	if err != nil {
		return err
	}
	_, err = conn.Relay(ctx, method, path, body)
	return err
}
