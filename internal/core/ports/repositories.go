package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

import (
	"context"

	"demo-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository is the credential store.
// Methods accepting pgx.Tx run inside a unit of work opened by DBTransactor.
type UserRepository interface {
	// Create inserts u if the username is free and reports whether it did.
	Create(ctx context.Context, u *domain.User) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByIDForUpdate reads the user and holds a row lock until tx ends.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id int64, balance decimal.Decimal) error
}

// TransactionRepository is the append-only ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	// ListByUser returns the user's rows, most recent first.
	ListByUser(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
