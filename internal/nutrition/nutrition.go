// Package nutrition estimates the nutrient content of a recipe from a local
// table of common foods.
package nutrition

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pageza/recipebox/backend/internal/grocery"
)

// Nutrients are amounts of the tracked nutrients. Sodium is in milligrams.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

func (n Nutrients) apply(f func(float64) float64) Nutrients {
	return Nutrients{
		Calories: f(n.Calories),
		Protein:  f(n.Protein),
		Carbs:    f(n.Carbs),
		Fat:      f(n.Fat),
		Fiber:    f(n.Fiber),
		Sugar:    f(n.Sugar),
		Sodium:   f(n.Sodium),
	}
}

func (n *Nutrients) add(o Nutrients) {
	n.Calories += o.Calories
	n.Protein += o.Protein
	n.Carbs += o.Carbs
	n.Fat += o.Fat
	n.Fiber += o.Fiber
	n.Sugar += o.Sugar
	n.Sodium += o.Sodium
}

// Ingredient is one recipe line to analyze.
type Ingredient struct {
	Name     string
	Quantity *float64
	Unit     string
}

type IngredientNutrition struct {
	Ingredient     string    `json:"ingredient"`
	MatchedFood    string    `json:"matched_food"`
	EstimatedGrams float64   `json:"estimated_grams"`
	Nutrients      Nutrients `json:"nutrients"`
}

// Report is the estimated nutrition of a whole recipe.
type Report struct {
	Total               Nutrients             `json:"total"`
	PerServing          Nutrients             `json:"per_serving"`
	Servings            int                   `json:"servings"`
	IngredientsAnalyzed int                   `json:"ingredients_analyzed"`
	IngredientsMissing  []string              `json:"ingredients_missing"`
	Breakdown           []IngredientNutrition `json:"breakdown"`
}

// Weights of units that are counted rather than measured.
var countUnitGrams = map[string]float64{
	"piece":   100,
	"pieces":  100,
	"slice":   30,
	"slices":  30,
	"clove":   3,
	"cloves":  3,
	"large":   50,
	"medium":  40,
	"small":   30,
	"pinch":   0.5,
	"dash":    0.5,
	"bunch":   100,
	"sprig":   2,
	"sprigs":  2,
	"stalk":   50,
	"stalks":  50,
	"head":    500,
	"can":     400,
	"package": 200,
	"pkg":     200,
	"stick":   113,
	"block":   400,
}

var unmeasuredUnits = map[string]bool{
	"to taste": true, "as needed": true, "for garnish": true, "optional": true,
}

var smallAmountIngredients = []string{
	"salt", "pepper", "black pepper", "white pepper", "paprika", "sweet paprika",
	"cumin", "cinnamon", "oregano", "thyme", "rosemary", "basil", "parsley",
	"cilantro", "dill", "fresh dill", "chili powder", "cayenne", "nutmeg",
	"garlic powder", "onion powder", "ginger", "turmeric", "curry powder",
}

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	firstNumber   = regexp.MustCompile(`\d+`)
)

// EstimateGrams guesses the weight of an ingredient line. Seasonings with
// no amount count as a pinch; unknown units count as 100 g each.
func EstimateGrams(quantity *float64, unit, name string) float64 {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	u := strings.ToLower(strings.TrimSpace(unit))

	if unmeasuredUnits[u] {
		if isSmallAmount(lowerName) {
			return 2
		}
		return 10
	}
	if quantity == nil || *quantity <= 0 {
		if isSmallAmount(lowerName) {
			return 2
		}
		return 50
	}
	q := *quantity
	if u == "" {
		return q * 100
	}
	if g, ok := grocery.GramsPerUnit(u); ok {
		return q * g
	}
	if g, ok := countUnitGrams[u]; ok {
		return q * g
	}
	return q * 100
}

func isSmallAmount(name string) bool {
	for _, s := range smallAmountIngredients {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// ForIngredient scales the matching food to the estimated weight of the
// line. ok is false when no food matches.
func ForIngredient(in Ingredient) (IngredientNutrition, bool) {
	name := parenthetical.ReplaceAllString(in.Name, "")
	name, _, _ = strings.Cut(name, ",")
	name = strings.TrimSpace(name)

	food, ok := Lookup(name)
	if !ok {
		return IngredientNutrition{}, false
	}
	grams := EstimateGrams(in.Quantity, in.Unit, name)
	scale := grams / 100
	return IngredientNutrition{
		Ingredient:     in.Name,
		MatchedFood:    food.Description,
		EstimatedGrams: round(grams, 1),
		Nutrients: food.per100g().apply(func(v float64) float64 {
			return round(v*scale, 2)
		}),
	}, true
}

// Calculate totals the nutrients of ingredients and divides them over
// servings, which is at least one. Lines with no matching food are listed
// in IngredientsMissing.
func Calculate(ingredients []Ingredient, servings int) Report {
	r := Report{
		IngredientsMissing: []string{},
		Breakdown:          []IngredientNutrition{},
	}
	for _, in := range ingredients {
		if strings.TrimSpace(in.Name) == "" {
			continue
		}
		n, ok := ForIngredient(in)
		if !ok {
			r.IngredientsMissing = append(r.IngredientsMissing, in.Name)
			continue
		}
		r.Breakdown = append(r.Breakdown, n)
		r.Total.add(n.Nutrients)
	}

	if servings < 1 {
		servings = 1
	}
	r.Servings = servings
	r.IngredientsAnalyzed = len(r.Breakdown)
	r.Total = r.Total.apply(func(v float64) float64 { return round(v, 1) })
	r.PerServing = r.Total.apply(func(v float64) float64 { return round(v/float64(servings), 1) })
	return r
}

// ParseServings reads the first number from text such as "4-6 servings".
// Text without one means a single serving.
func ParseServings(text string) int {
	n, err := strconv.Atoi(firstNumber.FindString(text))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
