package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ParseDecimal parses s as a decimal, defaulting to zero on malformed or
// empty input instead of failing.
func ParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Fixed2 formats d with exactly two decimal places.
func Fixed2(d decimal.Decimal) string {
	return d.StringFixed(2)
}
