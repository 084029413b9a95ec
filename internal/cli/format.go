// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CurrencySymbol prefixes every formatted amount. Commands set it from
// config or the --currency flag before rendering.
var CurrencySymbol = "$"

// FormatCost formats a currency amount.
// e.g., 1234567.8 -> "$1,234,568", 42.5 -> "$42.50"
func FormatCost(cost float64) string {
	if cost < 0 {
		return "-" + FormatCost(-cost)
	}
	if cost >= 1000 {
		return CurrencySymbol + FormatNumber(int64(math.Round(cost)))
	}
	if cost >= 100 {
		return fmt.Sprintf("%s%.0f", CurrencySymbol, cost)
	}
	return fmt.Sprintf("%s%.2f", CurrencySymbol, cost)
}

// FormatCompactCost abbreviates large amounts for narrow columns.
// e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M"
func FormatCompactCost(cost float64) string {
	abs := math.Abs(cost)
	sign := ""
	if cost < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s%s%.1fM", sign, CurrencySymbol, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s%s%.1fK", sign, CurrencySymbol, abs/1_000)
	default:
		return sign + CurrencySymbol + strconv.FormatFloat(math.Round(abs), 'f', 0, 64)
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

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatShare formats part as a percentage of whole, or "-" when whole is 0.
func FormatShare(part, whole float64) string {
	if whole == 0 {
		return "-"
	}
	return FormatPercent(part / whole)
}

// FormatDelta formats a cost delta with sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCost(delta)
	}
	return "-" + FormatCost(-delta)
}

// FormatFTE formats a full-time-equivalent headcount.
func FormatFTE(fte float64) string {
	return fmt.Sprintf("%.1f FTE", fte)
}

// FormatMonths formats a duration in months; 0 reads as undated.
func FormatMonths(n int) string {
	switch n {
	case 0:
		return "undated"
	case 1:
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

// FormatDays formats an allocation of days, dropping a trailing ".0".
func FormatDays(d float64) string {
	if d == math.Trunc(d) {
		return strconv.FormatFloat(d, 'f', 0, 64)
	}
	return strconv.FormatFloat(d, 'f', 1, 64)
}
