package service

import (
	"context"
	"fmt"
	"time"

	"demo-bank/internal/core/domain"
	"demo-bank/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SeedService provisions the demo account at startup.
type SeedService struct {
	userRepo ports.UserRepository
	hashSvc  ports.HashService
	log      zerolog.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(userRepo ports.UserRepository, hashSvc ports.HashService, log zerolog.Logger) *SeedService {
	return &SeedService{userRepo: userRepo, hashSvc: hashSvc, log: log}
}

// EnsureUser creates username with the given password and opening balance
// unless it already exists. It reports whether a user was created.
func (s *SeedService) EnsureUser(ctx context.Context, username, password, balance string) (bool, error) {
	opening, err := decimal.NewFromString(balance)
	if err != nil {
		return false, fmt.Errorf("parse seed balance %q: %w", balance, err)
	}
	if opening.IsNegative() {
		return false, fmt.Errorf("seed balance must not be negative: %s", balance)
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check seed user: %w", err)
	}
	if existing != nil {
		s.log.Info().Str("username", username).Msg("Seed user already exists")
		return false, nil
	}

	hash, err := s.hashSvc.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Balance:      opening.Round(domain.AmountScale),
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return false, fmt.Errorf("create seed user: %w", err)
	}
	if !created {
		// Lost a race with another instance.
		s.log.Info().Str("username", username).Msg("Seed user already exists")
		return false, nil
	}

	s.log.Info().
		Str("username", username).
		Int64("user_id", user.ID).
		Str("balance", domain.FormatAmount(user.Balance)).
		Msg("Seed user created")
	return true, nil
}
