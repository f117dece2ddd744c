package grocery

import (
	"math"
	"strings"
)

var unitToML = map[string]float64{
	"ml":          1.0,
	"milliliter":  1.0,
	"milliliters": 1.0,
	"l":           1000.0,
	"liter":       1000.0,
	"liters":      1000.0,
	"cup":         236.588,
	"cups":        236.588,
	"tbsp":        14.787,
	"tablespoon":  14.787,
	"tablespoons": 14.787,
	"tsp":         4.929,
	"teaspoon":    4.929,
	"teaspoons":   4.929,
	"fl oz":       29.574,
	"fluid ounce": 29.574,
	"pint":        473.176,
	"pints":       473.176,
	"quart":       946.353,
	"quarts":      946.353,
	"gallon":      3785.41,
	"gallons":     3785.41,
}

var unitToGrams = map[string]float64{
	"g":         1.0,
	"gram":      1.0,
	"grams":     1.0,
	"kg":        1000.0,
	"kilogram":  1000.0,
	"kilograms": 1000.0,
	"oz":        28.3495,
	"ounce":     28.3495,
	"ounces":    28.3495,
	"lb":        453.592,
	"lbs":       453.592,
	"pound":     453.592,
	"pounds":    453.592,
}

var unitAliases = map[string]string{
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"cups":        "cup",
	"ounces":      "oz",
	"ounce":       "oz",
	"pounds":      "lb",
	"pound":       "lb",
	"grams":       "g",
	"gram":        "g",
	"kilograms":   "kg",
	"kilogram":    "kg",
	"liters":      "l",
	"liter":       "l",
	"milliliters": "ml",
	"milliliter":  "ml",
}

var dairyLiquids = []string{"milk", "cream", "half and half", "buttermilk"}

// NormalizeUnit lowercases a unit and folds common spellings onto one
// abbreviation ("Tablespoons" -> "tbsp"). Unknown units are only lowercased.
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return ""
	}
	if alias, ok := unitAliases[u]; ok {
		return alias
	}
	return u
}

// CanCombine reports whether two amounts can be summed: same unit, or both
// volumes, or both weights. Two unit-less amounts combine; one alone does not.
func CanCombine(a, b string) bool {
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	u1, u2 := NormalizeUnit(a), NormalizeUnit(b)
	if u1 == u2 {
		return true
	}
	_, vol1 := unitToML[u1]
	_, vol2 := unitToML[u2]
	_, wt1 := unitToGrams[u1]
	_, wt2 := unitToGrams[u2]
	return (vol1 && vol2) || (wt1 && wt2)
}

// addAmounts sums two amounts and picks a unit a shopper would recognise.
func addAmounts(q1 float64, unit1 string, q2 float64, unit2, name string) (float64, string) {
	u1, u2 := NormalizeUnit(unit1), NormalizeUnit(unit2)
	if u1 == u2 {
		return q1 + q2, u1
	}

	ml1, vol1 := unitToML[u1]
	ml2, vol2 := unitToML[u2]
	if vol1 && vol2 {
		return practicalVolume(q1*ml1+q2*ml2, name)
	}

	g1, wt1 := unitToGrams[u1]
	g2, wt2 := unitToGrams[u2]
	if wt1 && wt2 {
		total := q1*g1 + q2*g2
		switch {
		case total >= 453.592:
			return round(total/453.592, 2), "lb"
		case total >= 28.3495:
			return round(total/28.3495, 2), "oz"
		default:
			return round(total, 1), "g"
		}
	}

	if u1 != "" {
		return q1 + q2, u1
	}
	return q1 + q2, u2
}

// practicalVolume expresses a millilitre total in the largest sensible
// shopping unit. Dairy liquids never drop below a quarter cup.
func practicalVolume(totalML float64, name string) (float64, string) {
	lower := strings.ToLower(name)
	dairy := false
	for _, d := range dairyLiquids {
		if strings.Contains(lower, d) {
			dairy = true
			break
		}
	}

	switch {
	case totalML >= 946.353:
		quarts := totalML / 946.353
		if quarts >= 3.5 {
			return round(quarts/4, 2), "gallon"
		}
		return round(quarts, 2), "quart"
	case totalML >= 473.176:
		return round(totalML/473.176, 2), "pint"
	case totalML >= 236.588 || dairy:
		cups := totalML / 236.588
		if cups < 0.25 {
			return 0.25, "cup"
		}
		return round(cups, 2), "cup"
	case totalML >= 14.787:
		return round(totalML/14.787, 2), "tbsp"
	default:
		return round(totalML/4.929, 2), "tsp"
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// GramsPerUnit estimates the weight of one unit. Weights convert directly
// and volumes are weighed as water. ok is false for any other unit.
func GramsPerUnit(unit string) (grams float64, ok bool) {
	u := NormalizeUnit(unit)
	if g, ok := unitToGrams[u]; ok {
		return g, true
	}
	if ml, ok := unitToML[u]; ok {
		return ml, true
	}
	return 0, false
}
