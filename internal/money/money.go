// Package money provides currency-safe arithmetic helpers.
// All currency values round half-up to cents; package weights round
// half-up to one decimal place to match carrier billing granularity.
package money

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds a currency amount half-up to two decimal places.
// Values are never truncated.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round1 rounds a weight half-up to one decimal place
func Round1(d decimal.Decimal) decimal.Decimal {
	return d.Round(1)
}

// FromFloat converts a float to a decimal without rounding
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// FromInt converts an integer to a decimal
func FromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Cents returns the amount in whole cents after Round2
func Cents(d decimal.Decimal) int64 {
	return Round2(d).Mul(decimal.NewFromInt(100)).IntPart()
}

// Format renders a currency amount with two decimals, e.g. "75.00"
func Format(d decimal.Decimal) string {
	return Round2(d).StringFixed(2)
}

// FormatUSD renders a currency amount with a dollar sign, e.g. "$75.00"
func FormatUSD(d decimal.Decimal) string {
	return "$" + Format(d)
}
