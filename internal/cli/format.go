// Package cli provides French number formatting and lipgloss rendering
// utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// decimalComma swaps the decimal point for the French comma.
func decimalComma(s string) string {
	return strings.Replace(s, ".", ",", 1)
}

// FormatMd formats an amount in billions of euros.
// e.g., 1500 -> "1,5 T€", 42 -> "42 Md€", 42.7 -> "42,7 Md€"
func FormatMd(amount float64) string {
	if amount >= 1000 {
		return decimalComma(fmt.Sprintf("%.1f", amount/1000)) + " T€"
	}
	if amount == math.Trunc(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64) + " Md€"
	}
	return decimalComma(fmt.Sprintf("%.1f", amount)) + " Md€"
}

// FormatMdDelta formats a signed amount with an explicit "+" for gains.
func FormatMdDelta(amount float64) string {
	if amount > 0 {
		return "+" + FormatMd(amount)
	}
	return FormatMd(amount)
}

// FormatSavings renders a savings opportunity as a spending change:
// positive savings show as a cut ("-196 Md€"), negative as an increase.
func FormatSavings(savings float64) string {
	if savings > 0 {
		return "-" + FormatMd(savings)
	}
	return "+" + FormatMd(math.Abs(savings))
}

// FormatPct formats a percentage to one decimal with a French comma.
// Negative values keep their natural sign; showSign adds "+" to positives.
func FormatPct(pct float64, showSign bool) string {
	sign := ""
	if showSign && pct > 0 {
		sign = "+"
	}
	return sign + decimalComma(fmt.Sprintf("%.1f", pct)) + "%"
}

// FormatPoints formats a score difference as signed whole points.
// e.g., 3.4 -> "+3", -12 -> "-12", 0.2 -> "0"
func FormatPoints(delta float64) string {
	n := int64(math.Round(delta))
	if n > 0 {
		return "+" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// FormatScore formats a 0-100 score with at most one decimal.
func FormatScore(score float64) string {
	r := math.Round(score*10) / 10
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	return decimalComma(strconv.FormatFloat(r, 'f', 1, 64))
}

// FormatNumber adds space thousands separators, French style, to
// an integer. e.g., 1234567 -> "1 234 567"
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
			result.WriteString(" ")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
