package render

import (
	"fmt"
	"math"
	"strconv"
)

// alignRight pads s on the left to width n. Longer strings are returned unchanged.
func alignRight(n int, s string) string {
	return fmt.Sprintf("%*s", n, s)
}

// toUint truncates x toward zero, mapping NaN and negative values to 0.
func toUint(x float64) uint64 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(x)
}

// formatFixed prints x with the given number of decimals.
func formatFixed(x float64, decimals int) string {
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

// FormatReynolds renders the Reynolds number bound: integral when >= 100.
func FormatReynolds(re float64) string {
	if re >= 100 {
		return "Re < " + strconv.FormatUint(toUint(re), 10)
	}
	return "Re < " + formatFixed(re, 6)
}

// FormatPercentage renders a fraction in [0, 1] as a 4-column percentage, e.g. " 42%".
func FormatPercentage(fraction float64) string {
	return alignRight(3, strconv.FormatUint(toUint(100*fraction), 10)) + "%"
}

// FormatTime renders seconds as "[Nd ]HHh MMm SSs". Unknown times render as "-".
func FormatTime(seconds float64, known bool) string {
	if !known || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "-"
	}
	total := toUint(seconds)
	days := total / 86400
	hours := (total / 3600) % 24
	minutes := (total / 60) % 60
	secs := total % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, minutes, secs)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, secs)
}
