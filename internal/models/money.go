package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxMenuPrice is the largest price a menu item may carry.
var MaxMenuPrice = MustMoney("9999.99")

// Money is a fixed-point amount with two decimal places.
type Money struct {
	decimal.Decimal
}

// NewMoney parses a decimal string such as "12.50".
func NewMoney(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return Money{d.Round(2)}, nil
}

// MustMoney is NewMoney for constants and fixtures.
func MustMoney(value string) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Times returns the amount multiplied by quantity.
func (m Money) Times(quantity int) Money {
	return Money{m.Mul(decimal.NewFromInt(int64(quantity))).Round(2)}
}

// Plus returns m + other.
func (m Money) Plus(other Money) Money {
	return Money{m.Add(other.Decimal)}
}

// EqualTo compares amounts ignoring representation.
func (m Money) EqualTo(other Money) bool {
	return m.Equal(other.Decimal)
}

func (m Money) String() string {
	return m.StringFixed(2)
}

// MarshalJSON always renders two decimals, e.g. "25.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// GormDataType is used when a field carries no explicit type tag.
func (Money) GormDataType() string {
	return "decimal(12,2)"
}
