package service

import (
	"context"
	"fmt"

	"demo-bank/internal/core/domain"
	"demo-bank/internal/core/ports"
	"demo-bank/pkg/apperror"

	"github.com/rs/zerolog"
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	userRepo ports.UserRepository
	txRepo   ports.TransactionRepository
	log      zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(userRepo ports.UserRepository, txRepo ports.TransactionRepository, log zerolog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{userRepo: userRepo, txRepo: txRepo, log: log}
}

// GetProfile returns the user behind an authenticated session.
func (s *AccountServiceImpl) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		// A session pointing at a missing user is an integrity fault.
		s.log.Error().Int64("user_id", userID).Msg("session user not found")
		return nil, apperror.InternalError(fmt.Errorf("user %d not found", userID))
	}
	return user, nil
}

// GetHistory returns the user's ledger rows, newest first.
func (s *AccountServiceImpl) GetHistory(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	txns, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}
