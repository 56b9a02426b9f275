package utils

import (
	"github.com/shopspring/decimal"
)

// CentsToDecimal converts an amount in minor currency units to display units.
// Ledger amounts are stored and transported as int64 cents; decimal is only used for
// derived display values so no precision is ever lost at rest.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// FormatCents renders an amount in minor units as a display-unit string, e.g. 1250 -> "12.50".
func FormatCents(cents int64) string {
	return CentsToDecimal(cents).StringFixed(2)
}
