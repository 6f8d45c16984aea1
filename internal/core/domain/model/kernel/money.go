package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable fixed-point currency amount. All order and payment
// arithmetic goes through this type so that rounding happens exactly once,
// half-up to 2 decimals, at the point a value is persisted onto an aggregate.
//
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoneyFromDecimal wraps a decimal amount without rounding it.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// NewMoneyFromString parses a decimal string such as "12.50".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return Money{amount: d}, nil
}

// MustMoney parses a decimal string and panics on failure.
// Intended for constants and tests only.
func MustMoney(s string) Money {
	return Money{amount: decimal.RequireFromString(s)}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Mul returns m scaled by the given decimal factor, without rounding.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// MulInt returns m multiplied by an integer quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Round2 rounds half-up to 2 decimal places.
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(2)}
}

// Cmp compares amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying decimal value, used by persistence DTOs.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String formats the amount with 2 decimal places, e.g. "27.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Format implements fmt.Formatter indirection for %s and %v via String.
var _ fmt.Stringer = Money{}
