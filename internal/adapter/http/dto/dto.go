package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"demo-bank/internal/core/domain"
)

// LoginForm is the body of POST /login, accepted as a form or JSON.
type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required,max=100"`
	Password string `form:"password" json:"password" binding:"required,max=128"`
}

// TransferRequest is the body of POST /api/transfer.
type TransferRequest struct {
	Recipient string `form:"recipient" json:"recipient" binding:"recipient"`
	Amount    Amount `form:"amount" json:"amount" binding:"required"`
}

// Amount holds a raw amount sent either as a JSON string or a JSON number.
// Parsing and range checks happen in the service.
type Amount string

var errAmountType = errors.New("amount must be a string or a number")

// UnmarshalJSON accepts "12.50", 12.5 and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errAmountType
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errAmountType
	}
	*a = Amount(n.String())
	return nil
}

// UserInfoResponse is the body of GET /api/user-info.
type UserInfoResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Balance  string `json:"balance"`
}

// NewUserInfoResponse renders u without its password hash.
func NewUserInfoResponse(u *domain.User) UserInfoResponse {
	return UserInfoResponse{
		ID:       u.ID,
		Username: u.Username,
		Balance:  domain.FormatAmount(u.Balance),
	}
}

// TransactionResponse is one element of GET /api/transactions.
type TransactionResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Amount    string  `json:"amount"`
	Recipient *string `json:"recipient"`
	Timestamp string  `json:"timestamp"`
}

// NewTransactionList renders ledger rows; the result is never nil.
func NewTransactionList(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, TransactionResponse{
			ID:        t.ID,
			UserID:    t.UserID,
			Amount:    domain.FormatAmount(t.Amount),
			Recipient: t.Recipient,
			Timestamp: t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
