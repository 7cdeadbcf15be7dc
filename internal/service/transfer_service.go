package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"demo-bank/internal/core/domain"
	"demo-bank/internal/core/ports"
	"demo-bank/pkg/apperror"

	"github.com/rs/zerolog"
)

// MaxRecipientLength is the longest recipient label accepted, in characters.
const MaxRecipientLength = 100

// TransferServiceImpl implements ports.TransferService.
type TransferServiceImpl struct {
	userRepo   ports.UserRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	userRepo ports.UserRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		userRepo:   userRepo,
		txRepo:     txRepo,
		transactor: transactor,
		log:        log,
	}
}

// Transfer debits the sender with pessimistic locking and appends the
// matching ledger row in the same unit of work.
func (s *TransferServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) error {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return apperror.Validation(err.Error())
	}

	recipient := strings.TrimSpace(req.Recipient)
	if utf8.RuneCountInString(recipient) > MaxRecipientLength {
		return apperror.Validation(fmt.Sprintf("recipient must be at most %d characters", MaxRecipientLength))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return s.failed(req.UserID, fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get sender
	user, err := s.userRepo.GetByIDForUpdate(ctx, dbTx, req.UserID)
	if err != nil {
		return s.failed(req.UserID, fmt.Errorf("lock user: %w", err))
	}
	if user == nil {
		return s.failed(req.UserID, errors.New("sender not found"))
	}

	// Business rule: sufficient funds
	if !user.CanDebit(amount) {
		s.log.Info().
			Int64("user_id", req.UserID).
			Str("amount", domain.FormatAmount(amount)).
			Msg("transfer rejected: insufficient funds")
		return apperror.ErrInsufficientFunds()
	}

	newBalance := user.Balance.Sub(amount)
	if err := s.userRepo.UpdateBalance(ctx, dbTx, user.ID, newBalance); err != nil {
		return s.failed(req.UserID, fmt.Errorf("update balance: %w", err))
	}

	txn := domain.NewDebit(user.ID, amount, recipient, time.Now().UTC())
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return s.failed(req.UserID, fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return s.failed(req.UserID, fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("user_id", user.ID).
		Int64("tx_id", txn.ID).
		Str("amount", domain.FormatAmount(amount)).
		Str("recipient", recipient).
		Msg("transfer completed")

	return nil
}

func (s *TransferServiceImpl) failed(userID int64, err error) error {
	s.log.Error().Err(err).Int64("user_id", userID).Msg("transfer failed")
	return apperror.ErrTransferFailed(err)
}
