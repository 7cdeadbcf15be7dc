package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"demo-bank/internal/core/domain"
	"demo-bank/internal/core/ports"
	"demo-bank/pkg/apperror"

	"github.com/rs/zerolog"
)

// sessionTokenBytes is the entropy of a session token (64 hex chars).
const sessionTokenBytes = 32

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo ports.UserRepository
	hashSvc  ports.HashService
	sessions ports.SessionStore
	ttl      time.Duration
	log      zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthServiceImpl. Sessions live for ttl.
func NewAuthService(
	userRepo ports.UserRepository,
	hashSvc ports.HashService,
	sessions ports.SessionStore,
	ttl time.Duration,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		hashSvc:  hashSvc,
		sessions: sessions,
		ttl:      ttl,
		log:      log,
	}
}

// Login validates credentials and opens a session.
// Unknown usernames and wrong passwords fail identically.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		s.log.Error().Err(err).Msg("login: user lookup failed")
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		s.burnVerify(password)
		s.log.Info().Str("username", username).Msg("login failed")
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("login: stored password hash is malformed")
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		s.log.Info().Str("username", username).Msg("login failed")
		return nil, apperror.ErrInvalidCredentials()
	}

	token, err := generateRandomHex(sessionTokenBytes)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate session token: %w", err))
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("login: session save failed")
		return nil, apperror.InternalError(fmt.Errorf("save session: %w", err))
	}

	s.log.Info().Int64("user_id", user.ID).Msg("login succeeded")
	return sess, nil
}

// Logout destroys the session. Unknown tokens are not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperror.InternalError(fmt.Errorf("delete session: %w", err))
	}
	return nil
}

// ResolveSession returns the live session behind token.
func (s *AuthServiceImpl) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, apperror.ErrNotAuthenticated()
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get session: %w", err))
	}
	if sess == nil {
		return nil, apperror.ErrNotAuthenticated()
	}
	if sess.IsExpired(time.Now().UTC()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("failed to delete expired session")
		}
		return nil, apperror.ErrNotAuthenticated()
	}
	return sess, nil
}

// burnVerify runs one hash verification against a throwaway hash so that
// unknown usernames cost about as much as wrong passwords.
func (s *AuthServiceImpl) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		h, err := s.hashSvc.Hash("dummy-password-for-timing")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to build dummy password hash")
			return
		}
		s.dummyHash = h
	})
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hashSvc.Verify(password, s.dummyHash)
}

// generateRandomHex generates a random hex string of n bytes.
func generateRandomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
