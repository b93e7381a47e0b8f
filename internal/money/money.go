// Package money converts between decimal currency units and integer cents.
package money

import (
	"github.com/shopspring/decimal"
)

const Currency = "USD"

var hundred = decimal.NewFromInt(100)

// ToCents converts a dollar amount to whole cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// FromCents converts cents back to a decimal dollar amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// Format renders cents as "$X.XX".
func Format(cents int64) string {
	return "$" + FromCents(cents).StringFixed(2)
}

// FormatAmount renders a dollar amount as "$X.XX".
func FormatAmount(amount float64) string {
	return Format(ToCents(amount))
}
