package memory

import (
	"context"
	"sync"
	"time"

	"demo-bank/internal/core/domain"

	"github.com/rs/zerolog"
)

type sessionEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// SessionStore implements ports.SessionStore in process memory.
// Expired entries are dropped on read and by Sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// Save stores the session under its token for ttl.
func (s *SessionStore) Save(_ context.Context, sess *domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sessionEntry{
		session:   *sess,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Get returns the session for token, or nil, nil if unknown or expired.
func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, token)
		return nil, nil
	}
	sess := e.session
	return &sess, nil
}

// Delete removes the session. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Sweep drops every expired session and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("removed", n).Msg("Expired sessions swept")
			}
		}
	}
}
