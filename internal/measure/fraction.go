package measure

import (
	"math"
	"strconv"
	"strings"
)

// Unspecified is rendered for ingredients without an explicit amount.
const Unspecified = "to taste"

const fractionTolerance = 0.01

type fraction struct {
	value float64
	text  string
}

// Order matters: the first entry within tolerance is used.
var commonFractions = []fraction{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{0.333, "1/3"},
	{0.375, "3/8"},
	{0.5, "1/2"},
	{0.625, "5/8"},
	{0.666, "2/3"},
	{0.667, "2/3"},
	{0.75, "3/4"},
	{0.875, "7/8"},
}

// FormatQuantity renders q the way a recipe card prints it: "2", "1 1/2",
// "3/4", or a short decimal such as "0.2" when no kitchen fraction is close.
func FormatQuantity(q *float64) string {
	if q == nil || *q == 0 {
		return Unspecified
	}
	v := *q
	whole := math.Floor(v)
	decimal := v - whole

	if decimal < 0.001 {
		return strconv.FormatFloat(whole, 'f', 0, 64)
	}

	for _, f := range commonFractions {
		if math.Abs(decimal-f.value) < fractionTolerance {
			if whole > 0 {
				return strconv.FormatFloat(whole, 'f', 0, 64) + " " + f.text
			}
			return f.text
		}
	}

	return trimDecimal(v)
}

// trimDecimal prints v with two decimals and drops trailing zeros.
func trimDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
