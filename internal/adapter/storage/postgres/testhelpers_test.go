package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// decimalArg matches a decimal.Decimal query argument by value, so 10 and
// 10.00 compare equal.
type decimalArg struct {
	want decimal.Decimal
}

func decimalEq(s string) decimalArg {
	return decimalArg{want: decimal.RequireFromString(s)}
}

func (a decimalArg) Match(v interface{}) bool {
	d, ok := v.(decimal.Decimal)
	return ok && d.Equal(a.want)
}

func (a decimalArg) String() string {
	return fmt.Sprintf("decimal(%s)", a.want)
}
