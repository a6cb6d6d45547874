package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision.
// Example: amount 1500.4 with precision 0 returns "1500"
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}
