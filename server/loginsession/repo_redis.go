package loginsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "admin:session:"

// RedisRepo stores sessions as JSON blobs whose TTL tracks the session expiry, so replicas
// behind a load balancer share browser sessions.
type RedisRepo struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedisRepo wraps an existing client.
func NewRedisRepo(client redis.UniversalClient) *RedisRepo {
	return &RedisRepo{client: client, now: time.Now}
}

// Upsert creates or updates a session
func (r *RedisRepo) Upsert(ctx context.Context, session Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}

	ttl := time.Duration(0)
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return apperrors.ErrSessionExpired
		}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("[RedisRepo Upsert] encoding session: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+session.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("[RedisRepo Upsert] %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (r *RedisRepo) Get(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, fmt.Errorf("sessionID is required")
	}

	data, err := r.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("[RedisRepo Get] %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("[RedisRepo Get] decoding session: %w", err)
	}
	if session.Expired(r.now()) {
		return Session{}, apperrors.ErrSessionExpired
	}
	return session, nil
}

// Delete removes a session
func (r *RedisRepo) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if err := r.client.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("[RedisRepo Delete] %w", err)
	}
	return nil
}
