package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account holder. Users are provisioned, never self-registered,
// and never deleted.
type User struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"` // Never expose
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CanDebit reports whether the balance covers amount.
func (u *User) CanDebit(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}
