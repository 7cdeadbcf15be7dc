package memory

import (
	"context"
	"fmt"

	"demo-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepo implements ports.UserRepository over a Store.
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create inserts u unless the username is taken. On insert u.ID is set.
func (r *UserRepo) Create(_ context.Context, u *domain.User) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[u.Username]; taken {
		return false, nil
	}
	s.nextUserID++
	u.ID = s.nextUserID

	stored := *u
	s.users[u.ID] = &stored
	s.byUsername[u.Username] = u.ID
	return true, nil
}

// GetByID returns a copy of the user, or nil, nil.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// GetByUsername returns a copy of the user, or nil, nil.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	id, ok := r.store.byUsername[username]
	r.store.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// GetByIDForUpdate locks the user row for the lifetime of tx and returns
// the user as tx sees it.
func (r *UserRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}

	u, err := r.GetByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}

	if err := t.lock(ctx, id); err != nil {
		return nil, fmt.Errorf("get user for update: %w", err)
	}

	// Re-read under the lock; a concurrent commit may have landed.
	u, err = r.GetByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	if staged, ok := t.stagedBalance(id); ok {
		u.Balance = staged
	}
	return u, nil
}

// UpdateBalance stages a balance write on tx.
func (r *UserRepo) UpdateBalance(_ context.Context, tx pgx.Tx, id int64, balance decimal.Decimal) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	if balance.IsNegative() {
		return fmt.Errorf("update user balance: balance would be negative: %s", balance)
	}

	r.store.mu.RLock()
	_, ok := r.store.users[id]
	r.store.mu.RUnlock()
	if !ok {
		return fmt.Errorf("user not found: %d", id)
	}
	return t.stageBalance(id, balance)
}
