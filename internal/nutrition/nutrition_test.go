package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func assertNutrients(t *testing.T, want, got Nutrients) {
	t.Helper()
	assert.InDelta(t, want.Calories, got.Calories, 0.051, "calories")
	assert.InDelta(t, want.Protein, got.Protein, 0.051, "protein")
	assert.InDelta(t, want.Carbs, got.Carbs, 0.051, "carbs")
	assert.InDelta(t, want.Fat, got.Fat, 0.051, "fat")
	assert.InDelta(t, want.Fiber, got.Fiber, 0.051, "fiber")
	assert.InDelta(t, want.Sugar, got.Sugar, 0.051, "sugar")
	assert.InDelta(t, want.Sodium, got.Sodium, 0.051, "sodium")
}

func TestLookup(t *testing.T) {
	tests := map[string]string{
		"Olive Oil":              "Oil, olive",
		"fresh spinach leaves":   "Spinach, raw",
		"chicken thighs":         "Chicken, raw",
		"grated parmesan cheese": "Cheese, cheddar",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			f, ok := Lookup(name)
			require.True(t, ok)
			assert.Equal(t, want, f.Description)
		})
	}

	for _, name := range []string{"", "  ", "dragon fruit", "saffron"} {
		_, ok := Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestEstimateGrams(t *testing.T) {
	tests := []struct {
		name string
		qty  *float64
		unit string
		want float64
	}{
		{"salt", nil, "to taste", 2},
		{"chicken", nil, "to taste", 10},
		{"black pepper", nil, "", 2},
		{"onion", nil, "", 50},
		{"onion", ptr(0), "", 50},
		{"eggs", ptr(2), "", 200},
		{"milk", ptr(1), "cup", 236.588},
		{"beef", ptr(1), "lb", 453.592},
		{"garlic", ptr(3), "clove", 9},
		{"eggs", ptr(2), "large", 100},
		{"celery", ptr(2), "handful", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name+" "+tt.unit, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateGrams(tt.qty, tt.unit, tt.name), 1e-9)
		})
	}
}

func TestForIngredientCleansName(t *testing.T) {
	n, ok := ForIngredient(Ingredient{Name: "Chicken breast (boneless), diced", Quantity: ptr(8), Unit: "oz"})
	require.True(t, ok)
	assert.Equal(t, "Chicken breast (boneless), diced", n.Ingredient)
	assert.Equal(t, "Chicken breast, raw", n.MatchedFood)
	assert.InDelta(t, 226.8, n.EstimatedGrams, 1e-9)
	assert.InDelta(t, 272.16, n.Nutrients.Calories, 1e-9)
}

func TestCalculate(t *testing.T) {
	r := Calculate([]Ingredient{
		{Name: "eggs", Quantity: ptr(2), Unit: "large"},
		{Name: "olive oil", Quantity: ptr(1), Unit: "tbsp"},
		{Name: "salt"},
		{Name: "dragon fruit", Quantity: ptr(1)},
		{Name: " "},
	}, 4)

	assert.Equal(t, 4, r.Servings)
	assert.Equal(t, 3, r.IngredientsAnalyzed)
	assert.Equal(t, []string{"dragon fruit"}, r.IngredientsMissing)
	require.Len(t, r.Breakdown, 3)
	assert.InDelta(t, 14.8, r.Breakdown[1].EstimatedGrams, 1e-9)
	assert.InDelta(t, 130.72, r.Breakdown[1].Nutrients.Calories, 1e-9)
	assert.InDelta(t, 775.16, r.Breakdown[2].Nutrients.Sodium, 1e-9)

	assertNutrients(t, Nutrients{Calories: 273.7, Protein: 12.6, Carbs: 0.7, Fat: 24.3, Sugar: 0.4, Sodium: 917.5}, r.Total)
	assertNutrients(t, Nutrients{Calories: 68.4, Protein: 3.2, Carbs: 0.2, Fat: 6.1, Sugar: 0.1, Sodium: 229.4}, r.PerServing)
}

func TestCalculateEmpty(t *testing.T) {
	r := Calculate(nil, 0)
	assert.Equal(t, 1, r.Servings)
	assert.Zero(t, r.IngredientsAnalyzed)
	assert.NotNil(t, r.IngredientsMissing)
	assert.NotNil(t, r.Breakdown)
	assert.Equal(t, Nutrients{}, r.Total)
}

func TestParseServings(t *testing.T) {
	assert.Equal(t, 4, ParseServings("4-6 servings"))
	assert.Equal(t, 8, ParseServings("serves 8"))
	assert.Equal(t, 1, ParseServings(""))
	assert.Equal(t, 1, ParseServings("a crowd"))
	assert.Equal(t, 1, ParseServings("0"))
}
