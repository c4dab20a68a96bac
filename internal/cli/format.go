// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with two decimals, thousands separators and
// the currency code. e.g., 1234.5, "EUR" -> "1,234.50 EUR"
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := groupThousands(amount.StringFixed(2))
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatPercent formats a 0-100 percentage. e.g., 86.456 -> "86.5%"
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return sign + s
	}

	var result strings.Builder
	remainder := len(intPart) % 3
	if remainder > 0 {
		result.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		result.WriteByte('.')
		result.WriteString(frac)
	}
	return sign + result.String()
}
