// Package memory provides in-process implementations of the storage ports.
// It backs the memory storage driver used for local runs and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"demo-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var errForeignTx = errors.New("memory: transaction was not started by this store")

// Store holds users and ledger rows. Writes made through a Tx become
// visible only on Commit.
type Store struct {
	mu         sync.RWMutex
	users      map[int64]*domain.User
	byUsername map[string]int64
	txns       []domain.Transaction
	nextUserID int64
	nextTxID   int64

	locksMu sync.Mutex
	locks   map[int64]chan struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]*domain.User),
		byUsername: make(map[string]int64),
		locks:      make(map[int64]chan struct{}),
	}
}

// Begin starts a unit of work. It implements ports.DBTransactor.
func (s *Store) Begin(_ context.Context) (pgx.Tx, error) {
	return &Tx{
		store:    s,
		held:     make(map[int64]struct{}),
		balances: make(map[int64]decimal.Decimal),
	}, nil
}

// rowLock returns the single-slot semaphore guarding a user row.
func (s *Store) rowLock(id int64) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	ch, ok := s.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[id] = ch
	}
	return ch
}

// Tx is a memory unit of work. Row locks taken by GetByIDForUpdate are held
// until Commit or Rollback. Only Commit and Rollback are implemented; the
// embedded pgx.Tx is nil.
type Tx struct {
	pgx.Tx

	store    *Store
	mu       sync.Mutex
	held     map[int64]struct{}
	balances map[int64]decimal.Decimal
	entries  []domain.Transaction
	closed   bool
}

func asTx(tx pgx.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store == nil {
		return nil, errForeignTx
	}
	return t, nil
}

// lock acquires the row lock for id unless this Tx already holds it.
func (t *Tx) lock(ctx context.Context, id int64) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return pgx.ErrTxClosed
	}
	if _, ok := t.held[id]; ok {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	select {
	case t.store.rowLock(id) <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("acquire row lock: %w", ctx.Err())
	}

	t.mu.Lock()
	t.held[id] = struct{}{}
	t.mu.Unlock()
	return nil
}

func (t *Tx) stageBalance(id int64, balance decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.balances[id] = balance
	return nil
}

func (t *Tx) stageEntry(e domain.Transaction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.entries = append(t.entries, e)
	return nil
}

func (t *Tx) stagedBalance(id int64) (decimal.Decimal, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.balances[id]
	return b, ok
}

// Commit applies staged writes atomically and releases row locks.
func (t *Tx) Commit(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}

	s := t.store
	s.mu.Lock()
	for id, balance := range t.balances {
		if u, ok := s.users[id]; ok {
			u.Balance = balance
		}
	}
	s.txns = append(s.txns, t.entries...)
	s.mu.Unlock()

	t.release()
	return nil
}

// Rollback discards staged writes. After Commit it returns pgx.ErrTxClosed.
func (t *Tx) Rollback(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.release()
	return nil
}

// release must be called with t.mu held.
func (t *Tx) release() {
	for id := range t.held {
		<-t.store.rowLock(id)
	}
	t.held = nil
	t.balances = nil
	t.entries = nil
	t.closed = true
}
