package validate

import (
	"math"
	"strconv"
	"strings"
)

// SanitizeNumber coerces a raw string into a float. Unparseable or
// non-finite input becomes 0 here, before any rule runs, so validators only
// ever fail for semantic reasons (negative, out of range), never for parse
// reasons.
func SanitizeNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SanitizeInteger coerces a raw string into an int with the same
// fallback-to-zero policy as SanitizeNumber. Fractional input truncates
// toward zero.
func SanitizeInteger(raw string) int {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

// IsIntegral reports whether the raw string parses as a whole number.
// "3.5" is numeric but not integral; garbage sanitizes to 0 which is
// integral by the fallback policy.
func IsIntegral(raw string) bool {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return true
	}
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return true // sanitizes to 0
	}
	return v == math.Trunc(v)
}
