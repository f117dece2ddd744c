package grocery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(v float64) *float64 { return &v }

func sampleRecipes() (Recipe, Recipe) {
	first := Recipe{
		ID: uuid.New(),
		Ingredients: []Ingredient{
			{Name: "milk", Quantity: qty(2), Unit: "cups"},
			{Name: "salt", Quantity: qty(1), Unit: "tsp"},
			{Name: "eggs", Quantity: qty(3)},
			{Name: "chicken breast", Quantity: qty(1), Unit: "lb"},
		},
	}
	second := Recipe{
		ID: uuid.New(),
		Ingredients: []Ingredient{
			{Name: "Whole Milk", Quantity: qty(1), Unit: "cup"},
			{Name: "Salt"},
			{Name: "chicken breast", Quantity: qty(8), Unit: "oz"},
		},
	}
	return first, second
}

func TestConsolidate(t *testing.T) {
	first, second := sampleRecipes()
	items := Consolidate([]Recipe{first, second})
	require.Len(t, items, 4)

	milk := items[0]
	assert.Equal(t, "Milk", milk.Name)
	assert.Equal(t, "Dairy", milk.Category)
	require.NotNil(t, milk.Quantity)
	assert.Equal(t, 3.0, *milk.Quantity)
	assert.Equal(t, "cup", milk.Unit)
	assert.Equal(t, "1 quart", milk.RetailPackage)
	assert.Equal(t, 1, milk.RetailPackageCount)
	assert.Equal(t, "3 cup", milk.ExactAmount)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, milk.RecipeIDs)

	salt := items[1]
	assert.Equal(t, "Salt", salt.Name)
	assert.Equal(t, "Pantry", salt.Category)
	assert.Nil(t, salt.Quantity)
	assert.Empty(t, salt.Unit)
	assert.Empty(t, salt.ExactAmount)
	assert.Len(t, salt.RecipeIDs, 2)

	eggs := items[2]
	assert.Equal(t, "Eggs", eggs.Name)
	assert.Equal(t, "Eggs", eggs.Category)
	assert.Equal(t, 3.0, *eggs.Quantity)
	assert.Empty(t, eggs.RetailPackage, "unit-less amounts get no package suggestion")

	chicken := items[3]
	assert.Equal(t, "Chicken breast", chicken.Name)
	assert.Equal(t, "Meat & Seafood", chicken.Category)
	assert.InDelta(t, 1.5, *chicken.Quantity, 1e-9)
	assert.Equal(t, "lb", chicken.Unit)
	assert.Equal(t, "1 1/2 lb", chicken.ExactAmount)
}

func TestAddRecipeDoesNotMutateInput(t *testing.T) {
	first, second := sampleRecipes()
	items := Consolidate([]Recipe{first})
	before := *items[0].Quantity

	updated := AddRecipe(items, second)
	assert.Equal(t, before, *items[0].Quantity)
	assert.Len(t, items[0].RecipeIDs, 1)
	assert.Equal(t, 3.0, *updated[0].Quantity)
}

func TestAddRecipeTwiceKeepsRecipeIDsUnique(t *testing.T) {
	r := Recipe{ID: uuid.New(), Ingredients: []Ingredient{
		{Name: "onion", Quantity: qty(1)},
		{Name: "onion", Quantity: qty(2)},
	}}
	items := Consolidate([]Recipe{r})
	require.Len(t, items, 1)
	assert.Equal(t, 3.0, *items[0].Quantity)
	assert.Equal(t, []uuid.UUID{r.ID}, items[0].RecipeIDs)
}

func TestAddRecipeFillsMissingAmount(t *testing.T) {
	r1 := Recipe{ID: uuid.New(), Ingredients: []Ingredient{{Name: "flour"}}}
	r2 := Recipe{ID: uuid.New(), Ingredients: []Ingredient{{Name: "flour", Quantity: qty(2), Unit: "Cups"}}}
	items := Consolidate([]Recipe{r1, r2})
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Quantity)
	assert.Equal(t, 2.0, *items[0].Quantity)
	assert.Equal(t, "cup", items[0].Unit)
	assert.Equal(t, "2 cup", items[0].ExactAmount)
}

func TestAddRecipeIncompatibleUnits(t *testing.T) {
	r1 := Recipe{ID: uuid.New(), Ingredients: []Ingredient{{Name: "carrot", Quantity: qty(2), Unit: "cup"}}}
	r2 := Recipe{ID: uuid.New(), Ingredients: []Ingredient{{Name: "carrot", Quantity: qty(100), Unit: "g"}}}
	items := Consolidate([]Recipe{r1, r2})
	require.Len(t, items, 1)
	assert.Equal(t, 102.0, *items[0].Quantity)
	assert.Equal(t, "cup", items[0].Unit)
}

func TestRemoveRecipe(t *testing.T) {
	first, second := sampleRecipes()
	items := Consolidate([]Recipe{first, second})

	remaining := RemoveRecipe(items, first.ID)
	require.Len(t, remaining, 3)
	names := []string{remaining[0].Name, remaining[1].Name, remaining[2].Name}
	assert.Equal(t, []string{"Milk", "Salt", "Chicken breast"}, names)
	assert.Equal(t, []uuid.UUID{second.ID}, remaining[0].RecipeIDs)
	assert.Equal(t, 3.0, *remaining[0].Quantity, "amounts are not reduced")

	assert.Len(t, items, 4)
	assert.Len(t, items[0].RecipeIDs, 2)

	assert.Empty(t, RemoveRecipe(remaining, second.ID))
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		unit string
		want string
	}{
		{"Fresh Diced Tomatoes", "", "Tomatoes"},
		{"diced fresh tomatoes", "", "Fresh tomatoes"},
		{"canned tuna", "can", "Tuna"},
		{"  garlic ", "", "Garlic"},
		{"room temperature butter", "tbsp", "Butter"},
		{"Large", "", "Large"},
		{"boneless skinless chicken thighs", "lb", "Chicken thighs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanName(tt.name, tt.unit))
		})
	}
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, "Produce", Categorize("Red Bell Pepper"))
	assert.Equal(t, "Dairy", Categorize("cheddar cheese"))
	assert.Equal(t, "Meat & Seafood", Categorize("salmon fillet"))
	assert.Equal(t, "Bakery & Bread", Categorize("flour tortillas"))
	assert.Equal(t, "Pantry", Categorize("jasmine rice"))
	assert.Equal(t, OtherCategory, Categorize("xanthan gum"))
}

func TestIsToTaste(t *testing.T) {
	assert.True(t, IsToTaste(nil, "", "salt"))
	assert.True(t, IsToTaste(qty(0), "cup", "rice"))
	assert.True(t, IsToTaste(qty(1), "tsp", "salt"))
	assert.True(t, IsToTaste(qty(1), "Tbsp", "black pepper"))
	assert.False(t, IsToTaste(qty(3), "tsp", "salt"))
	assert.False(t, IsToTaste(qty(1), "cup", "sugar"))
	assert.False(t, IsToTaste(qty(1), "tsp", "saffron"))
}

func TestCanCombine(t *testing.T) {
	assert.True(t, CanCombine("", ""))
	assert.False(t, CanCombine("cup", ""))
	assert.True(t, CanCombine("cups", "tbsp"))
	assert.True(t, CanCombine("oz", "LB"))
	assert.False(t, CanCombine("cup", "g"))
	assert.True(t, CanCombine("clove", "clove"))
}

func TestAddAmounts(t *testing.T) {
	q, u := addAmounts(1, "cup", 2, "tbsp", "stock")
	assert.InDelta(t, 1.13, q, 1e-9)
	assert.Equal(t, "cup", u)

	q, u = addAmounts(100, "grams", 100, "g", "rice")
	assert.Equal(t, 200.0, q)
	assert.Equal(t, "g", u)

	q, u = addAmounts(10, "g", 0.5, "oz", "yeast")
	assert.InDelta(t, 24.2, q, 1e-9)
	assert.Equal(t, "g", u)

	q, u = addAmounts(1, "gallon", 1, "quart", "water")
	assert.InDelta(t, 1.25, q, 1e-9)
	assert.Equal(t, "gallon", u)

	q, u = addAmounts(1, "tbsp", 1, "tsp", "heavy cream")
	assert.Equal(t, 0.25, q)
	assert.Equal(t, "cup", u)

	q, u = addAmounts(1, "tbsp", 1, "tsp", "vanilla")
	assert.InDelta(t, 1.33, q, 1e-9)
	assert.Equal(t, "tbsp", u)
}

func TestRoundToRetail(t *testing.T) {
	tests := []struct {
		name    string
		ing     string
		qty     *float64
		unit    string
		pkg     string
		count   int
		exact   string
		noMatch bool
	}{
		{name: "butter by the spoon", ing: "Butter", qty: qty(4), unit: "tbsp", pkg: "1 stick", count: 1, exact: "4 tbsp"},
		{name: "butter by weight", ing: "Butter", qty: qty(1), unit: "lb", pkg: "1 lb", count: 1, exact: "31.9 tbsp"},
		{name: "eggs by count", ing: "Eggs", qty: qty(14), unit: "whole", pkg: "18-count", count: 1, exact: "14 needed"},
		{name: "many eggs", ing: "Eggs", qty: qty(30), unit: "whole", pkg: "18-count", count: 2, exact: "30 needed"},
		{name: "milk by the gallon", ing: "Milk", qty: qty(5), unit: "gallon", pkg: "1 gallon", count: 5, exact: "80 cup"},
		{name: "no package", ing: "Flour", qty: qty(2), unit: "cup", exact: "2 cup"},
		{name: "volume product with weight unit", ing: "Milk", qty: qty(2), unit: "lb", exact: "2 lb"},
		{name: "missing amount", ing: "Milk", qty: nil, unit: "cup", noMatch: true},
		{name: "missing unit", ing: "Milk", qty: qty(1), unit: "", noMatch: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RoundToRetail(tt.ing, tt.qty, tt.unit)
			if tt.noMatch {
				assert.Equal(t, Retail{}, r)
				return
			}
			assert.Equal(t, tt.pkg, r.Package)
			assert.Equal(t, tt.count, r.Count)
			assert.Equal(t, tt.exact, r.Exact)
		})
	}
}

func TestToInstacart(t *testing.T) {
	first, second := sampleRecipes()
	out := ToInstacart(Consolidate([]Recipe{first, second}))
	require.Len(t, out, 4)

	assert.Equal(t, "milk", out[0].Name)
	assert.Equal(t, "Milk", out[0].DisplayText)
	assert.Equal(t, []InstacartMeasurement{{Quantity: 3, Unit: "cup"}}, out[0].Measurements)
	assert.Equal(t, "1 quart", out[0].SuggestedPackage)
	assert.Zero(t, out[0].SuggestedQuantity)

	assert.Equal(t, "salt", out[1].Name)
	assert.NotNil(t, out[1].Measurements)
	assert.Empty(t, out[1].Measurements)
	assert.Empty(t, out[1].SuggestedPackage)

	many := ToInstacart([]Item{{Name: "Eggs", Quantity: qty(30), Unit: "whole", RetailPackage: "18-count", RetailPackageCount: 2}})
	assert.Equal(t, 2, many[0].SuggestedQuantity)
}

func TestGramsPerUnit(t *testing.T) {
	tests := map[string]struct {
		grams float64
		ok    bool
	}{
		"lb":          {453.592, true},
		"Ounces":      {28.3495, true},
		"Tablespoons": {14.787, true},
		"cup":         {236.588, true},
		"clove":       {0, false},
		"":            {0, false},
	}
	for unit, tt := range tests {
		t.Run(unit, func(t *testing.T) {
			g, ok := GramsPerUnit(unit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.grams, g)
		})
	}
}
