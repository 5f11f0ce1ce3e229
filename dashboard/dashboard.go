package dashboard

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-admin-frontend/upstream"
)

// Statistic names the dashboard charts the account service can feed.
type Statistic string

const (
	PopularChatCategories Statistic = "popular-chat-categories"
	UserActivity          Statistic = "user-activity"
	ChatCategoryBreakdown Statistic = "chat-category-breakdown"
)

func (s Statistic) path() string {
	return "/statistics/" + string(s)
}

// Service reads dashboard statistics and manages the support banner.
type Service struct {
	client *upstream.Client
}

func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Stats(ctx context.Context, creds upstream.Credentials, stat Statistic) (upstream.Stats, error) {
	conn, err := s.client.OpenFor(creds)
	if err != nil {
		return nil, err
	}
	var stats upstream.Stats
	if err := conn.Get(ctx, stat.path(), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) Banner(ctx context.Context, creds upstream.Credentials) (upstream.Banner, error) {
	conn, err := s.client.OpenFor(creds)
	if err != nil {
		return upstream.Banner{}, err
	}
	var banner upstream.Banner
	if err := conn.Get(ctx, upstream.PathSupportBanner, &banner); err != nil {
		return upstream.Banner{}, err
	}
	return banner, nil
}

func (s *Service) UpdateBanner(ctx context.Context, creds upstream.Credentials, title, content string) error {
	conn, err := s.client.OpenFor(creds)
	if err != nil {
		return err
	}
	_, err = conn.Relay(ctx, http.MethodPut, upstream.PathSupportBanner, upstream.BannerUpdate{
		Title:   title,
		Content: content,
	})
	return err
}
