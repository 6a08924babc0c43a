// Package core holds the transaction record and the value types it is
// built from. Amounts are integer cents throughout; floats only appear
// at the presentation edge.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact monetary amount in minor units (cents).
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to Money. It accepts both dot
// (12.34) and comma (12,34) separators and rounds half-up on the third
// decimal place. Negative amounts are rejected; zero is allowed.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Major returns the amount in major units as a float64 for display.
// Use Cents for calculations.
func (m Money) Major() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount in major units from integer math, so no
// binary-float noise leaks into serialized documents.
func (m Money) String() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	if c%100 == 0 {
		return sign + strconv.FormatInt(c/100, 10)
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalJSON encodes the amount as a plain JSON number of major units,
// the shape the persisted document uses.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. Sign is kept;
// range validation belongs to Transaction.Validate.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		return ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return ErrInvalidAmount
	}
	m.Cents = cents.IntPart()
	return nil
}
