// Package measure turns stored ingredient quantities and ISO-8601 time
// fields into the strings a cook reads. Every function here is pure and
// safe for concurrent use.
package measure

import (
	"regexp"
	"strconv"
)

// DefaultServings is used when a recipe's servings text holds no usable number.
const DefaultServings = 4

var servingsPattern = regexp.MustCompile(`\d+`)

// Scale multiplies base by factor. A nil base stays nil; the input is never
// mutated and no rounding is applied.
func Scale(base *float64, factor float64) *float64 {
	if base == nil {
		return nil
	}
	v := *base * factor
	return &v
}

// ScaleFactor returns current/original servings. current is clamped to at
// least one serving and a non-positive original falls back to DefaultServings.
func ScaleFactor(current, original int) float64 {
	if current < 1 {
		current = 1
	}
	if original <= 0 {
		original = DefaultServings
	}
	return float64(current) / float64(original)
}

// ParseServings extracts the first integer from free text such as "4-6" or
// "serves 8". Missing or zero values yield DefaultServings.
func ParseServings(s string) int {
	m := servingsPattern.FindString(s)
	if m == "" {
		return DefaultServings
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return DefaultServings
	}
	return n
}
