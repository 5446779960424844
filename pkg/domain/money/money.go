// Package money provides a fixed-point monetary value type with two decimal
// places. Amounts are stored as an integer count of cents so that balance
// accumulation over many operations never suffers binary floating-point drift.
package money

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be represented as money
	// (NaN, infinity, or out of the representable range).
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrOverflow is returned when an arithmetic operation would exceed the
	// representable range.
	ErrOverflow = errors.New("monetary amount overflow")
)

// Money represents a monetary value as an integer number of cents.
// Invariants:
//   - The amount is always an exact multiple of 0.01.
//   - Rounding happens once, at construction, never during arithmetic.
type Money struct {
	cents int64
}

// Zero is the zero monetary value.
var Zero = Money{}

// New creates a Money value from a decimal amount, rounding half away from
// zero to two decimal places.
func New(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}
	cents := math.Round(amount * 100)
	if cents >= math.MaxInt64 || cents <= math.MinInt64 {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: int64(cents)}, nil
}

// FromCents creates a Money value from a raw cent count. Used when hydrating
// from a data store, where the stored value is already exact.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount in main units. Only for serialization at the API
// boundary; never feed the result back into arithmetic.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns m + other, failing on int64 overflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m.cents + other.cents
	if (other.cents > 0 && sum < m.cents) || (other.cents < 0 && sum > m.cents) {
		return Money{}, ErrOverflow
	}
	return Money{cents: sum}, nil
}

// Sub returns m - other, failing on int64 overflow.
func (m Money) Sub(other Money) (Money, error) {
	diff := m.cents - other.cents
	if (other.cents < 0 && diff < m.cents) || (other.cents > 0 && diff > m.cents) {
		return Money{}, ErrOverflow
	}
	return Money{cents: diff}, nil
}

// Cmp compares m with other: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// String formats the amount with two decimal places, e.g. "1234.50".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
