package sources

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParsedIngredient is a structured ingredient line.
type ParsedIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

var fractionValues = map[string]float64{
	"½": 0.5, "¼": 0.25, "¾": 0.75, "⅓": 0.333, "⅔": 0.667,
	"⅛": 0.125, "⅜": 0.375, "⅝": 0.625, "⅞": 0.875,
	"1/2": 0.5, "1/4": 0.25, "3/4": 0.75, "1/3": 0.333, "2/3": 0.667,
	"1/8": 0.125, "3/8": 0.375, "5/8": 0.625, "7/8": 0.875,
}

var (
	parenthetical   = regexp.MustCompile(`\(([^)]+)\)`)
	leadingQuantity = regexp.MustCompile(`^([\d\s.½¼¾⅓⅔⅛⅜⅝⅞]+(?:/\d+)?)\s*`)
)

// Longer spellings come first so "tablespoons" is not read as "tb".
var unitWords = []string{
	"tablespoons", "tablespoon", "tbsp", "tbs", "tb",
	"teaspoons", "teaspoon", "tsp", "ts",
	"cups", "cup", "c",
	"ounces", "ounce", "oz",
	"pounds", "pound", "lbs", "lb",
	"grams", "gram", "g",
	"kilograms", "kilogram", "kg",
	"milliliters", "milliliter", "ml",
	"liters", "liter", "l",
	"pints", "pint", "pt",
	"quarts", "quart", "qt",
	"gallons", "gallon", "gal",
	"pinch", "pinches", "dash", "dashes",
	"cloves", "clove", "slices", "slice",
	"pieces", "piece", "stalks", "stalk",
	"sprigs", "sprig", "bunches", "bunch",
	"cans", "can", "packages", "package", "pkg",
	"sticks", "stick", "heads", "head",
	"large", "medium", "small",
}

var unitPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(unitWords))
	for i, u := range unitWords {
		out[i] = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(u) + `\b\.?\s*`)
	}
	return out
}()

// ParseIngredient splits a line such as "2 cups all-purpose flour, sifted"
// into quantity, unit, name and notes. Text after the first comma and any
// parenthetical become notes.
func ParseIngredient(line string) ParsedIngredient {
	var p ParsedIngredient
	rest := line

	if before, after, ok := strings.Cut(rest, ","); ok {
		rest = strings.TrimSpace(before)
		p.Notes = strings.TrimSpace(after)
	}

	if m := parenthetical.FindStringSubmatch(rest); m != nil {
		if p.Notes != "" {
			p.Notes = m[1] + "; " + p.Notes
		} else {
			p.Notes = m[1]
		}
		rest = strings.TrimSpace(parenthetical.ReplaceAllString(rest, ""))
	}

	if loc := leadingQuantity.FindStringSubmatchIndex(rest); loc != nil {
		qty := strings.TrimSpace(rest[loc[2]:loc[3]])
		rest = strings.TrimSpace(rest[loc[1]:])
		p.Quantity = parseQuantity(qty)
	}

	for i, re := range unitPatterns {
		loc := re.FindStringIndex(rest)
		if loc == nil {
			continue
		}
		p.Unit = singular(unitWords[i])
		rest = strings.TrimSpace(rest[loc[1]:])
		break
	}

	p.Name = strings.TrimPrefix(strings.TrimSpace(rest), "of ")
	return p
}

func parseQuantity(s string) *float64 {
	if s == "" {
		return nil
	}
	if v, ok := fractionValues[s]; ok {
		return &v
	}
	if whole, frac, ok := strings.Cut(s, " "); ok {
		w, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			return nil
		}
		v := w + fractionValues[strings.TrimSpace(frac)]
		return &v
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return nil
		}
		v := n / d
		return &v
	}
	// "1½" style: digits followed by a vulgar fraction.
	if r, size := utf8.DecodeLastRuneInString(s); r > utf8.RuneSelf {
		if frac, ok := fractionValues[s[len(s)-size:]]; ok {
			w, err := strconv.ParseFloat(s[:len(s)-size], 64)
			if err != nil {
				return nil
			}
			v := w + frac
			return &v
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// singular drops a plural "s" from unit words longer than three letters.
func singular(u string) string {
	switch {
	case u == "dashes" || u == "pinches":
		return u
	case strings.HasSuffix(u, "ches"):
		return strings.TrimSuffix(u, "es")
	case strings.HasSuffix(u, "s") && len(u) > 3:
		return strings.TrimSuffix(u, "s")
	}
	return u
}
