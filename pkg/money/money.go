package money

import (
	"fmt"
	"math"

	"github.com/mkamau/dinepos-api/pkg/apperror"
)

// Money is a monetary amount in minor units (cents). All arithmetic is done
// on the integer representation so repeated additions never drift the way
// float math does.
type Money int64

// Zero is the zero amount.
const Zero Money = 0

// FromCents wraps a raw minor-unit value.
func FromCents(cents int64) Money {
	return Money(cents)
}

// Parse converts an untrusted decimal amount (e.g. from a JSON body) into
// Money. Non-finite or negative input is rejected with an InvalidAmount
// error instead of being silently coerced to zero.
func Parse(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, apperror.NewInvalidAmountError(fmt.Sprintf("amount is not a finite number: %v", amount))
	}
	if amount < 0 {
		return 0, apperror.NewInvalidAmountError(fmt.Sprintf("amount must not be negative: %v", amount))
	}
	return Money(math.Round(amount * 100)), nil
}

// MustParse is Parse for trusted inputs such as test fixtures and defaults.
// It panics on invalid input.
func MustParse(amount float64) Money {
	m, err := Parse(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other. The result may be negative; callers that care
// (change-due math) check IsNegative.
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulQty multiplies the amount by a quantity. Quantities are integral for
// countable items and fractional for weight-based ones, so the result is
// rounded to the nearest cent.
func (m Money) MulQty(qty float64) Money {
	return Money(math.Round(float64(m) * qty))
}

// PercentOf returns rate*m rounded to the nearest cent, where rate is a
// decimal fraction such as 0.15.
func (m Money) PercentOf(rate float64) Money {
	return Money(math.Round(float64(m) * rate))
}

// Cents returns the raw minor-unit value.
func (m Money) Cents() int64 {
	return int64(m)
}

// Float64 returns the amount in major units for JSON edges. Internal code
// never computes on this value.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// Format renders the amount with a currency symbol, e.g. "$12.50".
func (m Money) Format(symbol string) string {
	if m < 0 {
		return fmt.Sprintf("-%s%d.%02d", symbol, -m/100, -m%100)
	}
	return fmt.Sprintf("%s%d.%02d", symbol, m/100, m%100)
}

// String implements fmt.Stringer using a bare decimal rendering.
func (m Money) String() string {
	return m.Format("")
}
