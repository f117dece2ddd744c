package grocery

import (
	"fmt"
	"strings"

	"github.com/pageza/recipebox/backend/internal/measure"
)

type packageKind int

const (
	byVolume packageKind = iota
	byWeight
	byCount
)

// retailSize holds ml, grams or a count depending on the product's kind.
type retailSize struct {
	size  float64
	label string
}

type retailProduct struct {
	key   string
	kind  packageKind
	sizes []retailSize
}

// US supermarket package sizes, smallest first. Matching walks the list in
// order and takes the first key contained in the ingredient name.
var retailProducts = []retailProduct{
	{"milk", byVolume, []retailSize{{473, "1 pint"}, {946, "1 quart"}, {1893, "1/2 gallon"}, {3785, "1 gallon"}}},
	{"cream", byVolume, []retailSize{{236, "8 oz"}, {473, "1 pint"}, {946, "1 quart"}}},
	{"half and half", byVolume, []retailSize{{473, "1 pint"}, {946, "1 quart"}}},
	{"buttermilk", byVolume, []retailSize{{946, "1 quart"}, {1893, "1/2 gallon"}}},
	{"butter", byWeight, []retailSize{{113, "1 stick"}, {227, "2 sticks"}, {454, "1 lb"}}},
	{"egg", byCount, []retailSize{{6, "half dozen"}, {12, "1 dozen"}, {18, "18-count"}}},
	{"eggs", byCount, []retailSize{{6, "half dozen"}, {12, "1 dozen"}, {18, "18-count"}}},
	{"sour cream", byVolume, []retailSize{{236, "8 oz"}, {473, "16 oz"}}},
	{"yogurt", byVolume, []retailSize{{170, "6 oz"}, {473, "16 oz"}, {907, "32 oz"}}},
	{"chicken broth", byVolume, []retailSize{{414, "14 oz can"}, {946, "32 oz carton"}}},
	{"beef broth", byVolume, []retailSize{{414, "14 oz can"}, {946, "32 oz carton"}}},
	{"vegetable broth", byVolume, []retailSize{{414, "14 oz can"}, {946, "32 oz carton"}}},
	{"olive oil", byVolume, []retailSize{{500, "17 oz bottle"}, {750, "25 oz bottle"}, {1000, "34 oz bottle"}}},
	{"vegetable oil", byVolume, []retailSize{{710, "24 oz bottle"}, {1420, "48 oz bottle"}}},
}

// Butter is sold by weight but measured by the spoon.
const (
	butterGramsPerTbsp = 14.2
	butterGramsPerCup  = 227
)

// Retail is the shopping suggestion for one grocery item.
type Retail struct {
	Package string
	Count   int
	Exact   string
}

func findRetailProduct(name string) (retailProduct, bool) {
	lower := strings.ToLower(name)
	for _, p := range retailProducts {
		if strings.Contains(lower, p.key) {
			return p, true
		}
	}
	return retailProduct{}, false
}

// RoundToRetail suggests the package a shopper should pick up for the
// given amount, along with the exact amount the recipes call for.
func RoundToRetail(name string, quantity *float64, unit string) Retail {
	if quantity == nil || unit == "" {
		return Retail{}
	}
	q := *quantity
	product, ok := findRetailProduct(name)
	if !ok {
		return Retail{Exact: exactAmount(q, unit)}
	}

	norm := NormalizeUnit(unit)
	switch product.kind {
	case byVolume:
		perML, ok := unitToML[norm]
		if !ok {
			return Retail{Exact: exactAmount(q, unit)}
		}
		total := q * perML
		r := pick(product.sizes, total)
		r.Exact = exactAmount(round(total/236.588, 2), "cup")
		return r

	case byWeight:
		isButter := strings.Contains(strings.ToLower(name), "butter")
		var total float64
		if perGram, ok := unitToGrams[norm]; ok {
			total = q * perGram
		} else if isButter && norm == "tbsp" {
			total = q * butterGramsPerTbsp
		} else if isButter && norm == "cup" {
			total = q * butterGramsPerCup
		} else {
			return Retail{Exact: exactAmount(q, unit)}
		}
		r := pick(product.sizes, total)
		if isButter {
			r.Exact = exactAmount(round(total/butterGramsPerTbsp, 1), "tbsp")
		} else {
			r.Exact = exactAmount(round(total/28.35, 1), "oz")
		}
		return r

	default:
		needed := int(q)
		r := pick(product.sizes, float64(needed))
		r.Exact = fmt.Sprintf("%d needed", needed)
		return r
	}
}

// pick returns the smallest package holding amount, or enough of the
// largest package to cover it.
func pick(sizes []retailSize, amount float64) Retail {
	for _, s := range sizes {
		if s.size >= amount {
			return Retail{Package: s.label, Count: 1}
		}
	}
	largest := sizes[len(sizes)-1]
	return Retail{Package: largest.label, Count: int(amount/largest.size + 0.99)}
}

func exactAmount(q float64, unit string) string {
	text := "0"
	if q != 0 {
		text = measure.FormatQuantity(&q)
	}
	if unit == "" {
		return text
	}
	return text + " " + unit
}
