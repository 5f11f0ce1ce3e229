package loginsession

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-admin-frontend/internal/errors"
)

// InMemoryRepo keeps sessions in process memory. Sessions do not survive a restart and are not
// shared between replicas.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Upsert creates or updates a session
func (r *InMemoryRepo) Upsert(_ context.Context, session Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

// Get retrieves a session, dropping it if it has expired
func (r *InMemoryRepo) Get(_ context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, fmt.Errorf("sessionID is required")
	}

	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}

	now := r.now()
	if !session.Expired(now) {
		return session, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// An Upsert may have refreshed the session since the read lock was released.
	current, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, apperrors.ErrSessionExpired
	}
	if !current.Expired(now) {
		return current, nil
	}
	delete(r.sessions, sessionID)
	return Session{}, apperrors.ErrSessionExpired
}

// Delete removes a session
func (r *InMemoryRepo) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

// DeleteExpired removes every session past its expiry and returns how many were dropped.
func (r *InMemoryRepo) DeleteExpired() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
