package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger entry owned by a user.
// Amount is signed: negative for debits, positive for credits.
type Transaction struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient *string         `json:"recipient,omitempty"`
	CreatedAt time.Time       `json:"timestamp"`
}

// NewDebit builds the ledger row mirroring a balance decrement of amount.
// An empty recipient label is stored as NULL.
func NewDebit(userID int64, amount decimal.Decimal, recipient string, now time.Time) *Transaction {
	t := &Transaction{
		UserID:    userID,
		Amount:    amount.Neg(),
		CreatedAt: now,
	}
	if recipient != "" {
		t.Recipient = &recipient
	}
	return t
}

// IsDebit returns true if the entry decreased the owner's balance.
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}
