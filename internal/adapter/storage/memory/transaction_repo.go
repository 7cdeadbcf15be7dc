package memory

import (
	"cmp"
	"context"
	"slices"

	"demo-bank/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository over a Store.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create stages a ledger row on tx and sets t.ID. IDs of rolled back rows
// are not reused.
func (r *TransactionRepo) Create(_ context.Context, tx pgx.Tx, t *domain.Transaction) error {
	mtx, err := asTx(tx)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	r.store.nextTxID++
	t.ID = r.store.nextTxID
	r.store.mu.Unlock()

	return mtx.stageEntry(*t)
}

// ListByUser returns the committed rows of userID, newest first.
func (r *TransactionRepo) ListByUser(_ context.Context, userID int64) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	txns := make([]domain.Transaction, 0)
	for _, t := range r.store.txns {
		if t.UserID == userID {
			txns = append(txns, t)
		}
	}
	r.store.mu.RUnlock()

	slices.SortFunc(txns, func(a, b domain.Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return txns, nil
}
