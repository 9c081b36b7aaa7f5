// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a currency amount rounded to cents with thousands separators.
// e.g., 1234567.891 -> "$1,234,567.89", -5 -> "-$5.00"
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(whole.IntPart()), cents)
}

// FormatMoneyShort formats large amounts with K/M suffixes for compact columns.
// e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M"
func FormatMoneyShort(amount float64) string {
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("$%.1fK", amount/1_000)
	default:
		return fmt.Sprintf("$%.0f", amount)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already expressed in percent (0-100).
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatRate formats a decimal fraction as a percentage. e.g., 0.07 -> "7.00%"
func FormatRate(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}
