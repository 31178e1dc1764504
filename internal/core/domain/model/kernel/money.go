package kernel

import (
	"errors"
	"fmt"

	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every amount is stored with.
const MoneyScale = 2

// ErrMoneyIsNegative is returned by NewNonNegativeMoney for amounts below zero.
var ErrMoneyIsNegative = errors.New("amount must not be negative")

// Money is a monetary amount with fixed two decimal precision.
// Arithmetic is exact (decimal, not float) and every result is rounded half-up
// to MoneyScale places, so stored and computed amounts always agree.
//
// The zero value is a valid amount of 0.00.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney wraps a decimal amount, rounding it to two places.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MoneyScale)}
}

// NewNonNegativeMoney is NewMoney for amounts that must not be negative,
// such as delivery fees, discounts and catalog prices.
func NewNonNegativeMoney(field string, amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%s: %w", amount.String(), ErrMoneyIsNegative))
	}
	return NewMoney(amount), nil
}

// MoneyFromString parses a textual amount such as "10.50".
func MoneyFromString(field, s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return NewMoney(amount), nil
}

// MustMoney parses s and panics on malformed input. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString("amount", s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Sub returns m - other. The result may be negative.
func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// Mul returns m multiplied by an integer quantity.
func (m Money) Mul(quantity int) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

// ClampAtZero returns 0.00 for negative amounts and m otherwise.
func (m Money) ClampAtZero() Money {
	if m.amount.IsNegative() {
		return ZeroMoney()
	}
	return m
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equal compares amounts by value, ignoring representation ("1.5" equals "1.50").
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
