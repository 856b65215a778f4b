// Package model defines the core data structures for the flowledger application.
package model

import (
	"errors"
	"fmt"
)

// DefaultCurrency is used when no explicit currency is given.
const DefaultCurrency = "CHF"

// ErrCurrencyMismatch is returned when arithmetic mixes two currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an immutable amount in minor units (cents) with a currency tag.
// Integer minor units avoid floating-point drift in ledger arithmetic.
type Money struct {
	Currency string `json:"currency"`
	Cents    int64  `json:"cents"`
}

// NewMoney creates a Money value in the given currency.
// An empty currency falls back to DefaultCurrency.
func NewMoney(cents int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Cents: cents, Currency: currency}
}

// Zero returns a zero amount in the default currency.
func Zero() Money {
	return NewMoney(0, DefaultCurrency)
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Cents: m.Cents + other.Cents, Currency: m.Currency}, nil
}

// Sub returns m - other. Both values must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Cents: m.Cents - other.Cents, Currency: m.Currency}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// String formats the amount as "CHF 1234.50". Negative amounts keep the
// sign in front of the units, not the currency.
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	cur := m.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	return fmt.Sprintf("%s %s%d.%02d", cur, sign, cents/100, cents%100)
}
