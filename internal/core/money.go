// Package core provides money parsing and handling utilities.
//
// Amounts are exact decimals in the major currency unit. They are persisted
// as plain JSON numbers so stored collections stay readable by other tools.
package core

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when formatting with an unknown currency code.
const DefaultCurrency = money.USD

// Money is a decimal amount in the major unit (12.34 means twelve and 34 cents).
type Money struct {
	value decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{value: d} }

// M builds an amount from an integer or float literal. Mostly useful in tests.
func M[T float64 | int | int64](v T) Money {
	switch x := any(v).(type) {
	case float64:
		return Money{value: decimal.NewFromFloat(x)}
	case int:
		return Money{value: decimal.NewFromInt(int64(x))}
	default:
		return Money{value: decimal.NewFromInt(x.(int64))}
	}
}

// ParseMoney converts a user-entered amount to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up to two decimals. Only strictly positive amounts are accepted.
//
// Examples:
//
//	ParseMoney("12.34")  -> 12.34
//	ParseMoney("12,345") -> 12.35
//	ParseMoney("-1")     -> ErrInvalidAmount
func ParseMoney(s string) (Money, error) {
	m, err := parseAmount(s)
	if err != nil {
		return Money{}, err
	}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// ParseBudgetAmount is ParseMoney for budget forms, where zero clears a
// category's budget and is therefore accepted.
func ParseBudgetAmount(s string) (Money, error) {
	return parseAmount(s)
}

func parseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	if strings.ContainsAny(s, "eE") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{value: d.Round(2)}, nil
}

// Validate reports ErrInvalidAmount unless the amount is strictly positive.
func (m Money) Validate() error {
	if !m.value.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Decimal() decimal.Decimal         { return m.value }
func (m Money) IsZero() bool                     { return m.value.IsZero() }
func (m Money) IsPositive() bool                 { return m.value.IsPositive() }
func (m Money) IsNegative() bool                 { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool               { return m.value.Equal(n.value) }
func (m Money) Cmp(n Money) int                  { return m.value.Cmp(n.value) }
func (m Money) GreaterThan(n Money) bool         { return m.value.GreaterThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool     { return m.value.LessThanOrEqual(n.value) }
func (m Money) Add(n Money) Money                { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money                { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(f decimal.Decimal) Money      { return Money{value: m.value.Mul(f)} }
func (m Money) DivInt(n int) Money               { return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))} }
func (m Money) Ratio(total Money) float64        { return m.value.Div(total.value).InexactFloat64() }
func (m Money) Float64() float64                 { return m.value.InexactFloat64() }
func (m Money) Max(n Money) Money                { return Money{value: decimal.Max(m.value, n.value)} }
func (m Money) Round(places int32) Money         { return Money{value: m.value.Round(places)} }

// String returns the plain decimal representation, e.g. "12.5".
func (m Money) String() string { return m.value.String() }

// Format renders the amount with the symbol and fraction digits of the given
// ISO 4217 currency code. Unknown codes fall back to DefaultCurrency.
func (m Money) Format(currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// MarshalJSON writes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Money{}
		return nil
	}
	s := strings.Trim(string(data), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("decode amount %q: %w", s, err)
	}
	m.value = d
	return nil
}
