package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"math"
	"strconv"
)

// ErrInvalidAmount an amount that cannot be turned into a non-negative number of cents
var ErrInvalidAmount = errors.New("invalid amount")

// Cents an exact monetary amount, 1/100 of a dollar
type Cents int64

// maxCents largest amount that still fits in Cents
var maxCents = decimal.NewFromInt(math.MaxInt64)

// Denomination a coin value and its plural name
type Denomination struct {
	Value Cents
	Name  string
}

// Denominations the coins change is made from, largest first. Never modified.
var Denominations = []Denomination{
	{Value: 25, Name: "quarters"},
	{Value: 10, Name: "dimes"},
	{Value: 5, Name: "nickels"},
	{Value: 1, Name: "pennies"},
}

// ChangeLine a number of coins of one denomination
type ChangeLine struct {
	Count int64
	Name  string
}

// MarshalJSON renders a line as a single-key object, e.g. {"3":"quarters"}
func (l ChangeLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{strconv.FormatInt(l.Count, 10): l.Name})
}

// Change lines ordered from the largest to the smallest denomination
type Change []ChangeLine

// ToCents converts a dollar amount to cents, rounding half away from zero.
func ToCents(amount decimal.Decimal) (Cents, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("negative amount [%v]: %w", amount, ErrInvalidAmount)
	}
	cents := amount.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("amount too large [%v]: %w", amount, ErrInvalidAmount)
	}
	return Cents(cents.IntPart()), nil
}

// ParseAmount assembles a dollar amount from its whole dollar and cents segments,
// so "1" and "50" give 1.50. Segments must be plain digits; dollars may carry a
// leading minus sign, which ToCents then rejects.
func ParseAmount(dollars, cents string) (decimal.Decimal, error) {
	if !isDigits(trimSign(dollars)) || !isDigits(cents) {
		return decimal.Decimal{}, fmt.Errorf("parse amount [%v.%v]: %w", dollars, cents, ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(dollars + "." + cents)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount [%v.%v]: %v: %w", dollars, cents, err, ErrInvalidAmount)
	}
	return amount, nil
}

// AmountFromFloat converts float dollars to an exact decimal amount
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, fmt.Errorf("amount from float [%v]: %w", f, ErrInvalidAmount)
	}
	return decimal.NewFromFloat(f), nil
}

func trimSign(s string) string {
	if len(s) > 1 && s[0] == '-' {
		return s[1:]
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
