package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits a currency amount may carry.
const AmountScale = 2

// MaxAmount is the largest value a NUMERIC(14,2) column can hold.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// maxAmountLength caps the raw input so the coefficient stays small.
const maxAmountLength = 32

// Exponent bounds. With at most maxAmountLength coefficient digits, a larger
// exponent always exceeds MaxAmount and a smaller one always carries more
// than AmountScale fractional digits.
const (
	maxAmountExponent = 12
	minAmountExponent = -(AmountScale + maxAmountLength)
)

var (
	ErrAmountNotNumeric  = errors.New("amount must be a number")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountPrecision   = errors.New("amount must have at most two decimal places")
	ErrAmountTooLarge    = errors.New("amount is too large")
)

// ParseAmount parses a transfer amount. Only finite, strictly positive values
// with at most AmountScale fractional digits are accepted. Length and
// exponent are checked before any arithmetic so scientific notation cannot
// force a huge expansion.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrAmountNotNumeric
	}
	if len(raw) > maxAmountLength {
		return decimal.Zero, ErrAmountTooLarge
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrAmountNotNumeric
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountNotPositive
	}
	if amount.Exponent() > maxAmountExponent {
		return decimal.Zero, ErrAmountTooLarge
	}
	if amount.Exponent() < minAmountExponent {
		return decimal.Zero, ErrAmountPrecision
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return decimal.Zero, ErrAmountPrecision
	}
	if amount.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return amount, nil
}

// FormatAmount renders a currency value with exactly AmountScale digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
