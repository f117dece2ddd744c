// Package grocery merges recipe ingredients into a shopping list: like
// ingredients are combined across recipes, amounts are summed in compatible
// units and every line gets a retail package suggestion.
package grocery

import (
	"strings"

	"github.com/google/uuid"
)

// Ingredient is one line of a recipe as the list builder sees it.
type Ingredient struct {
	Name     string
	Quantity *float64
	Unit     string
}

// Recipe is the input to list building.
type Recipe struct {
	ID          uuid.UUID
	Ingredients []Ingredient
}

// Item is one line of a grocery list. ID is uuid.Nil until the item has
// been stored.
type Item struct {
	ID                 uuid.UUID
	Name               string
	Quantity           *float64
	Unit               string
	Category           string
	RecipeIDs          []uuid.UUID
	RetailPackage      string
	RetailPackageCount int
	ExactAmount        string
	Checked            bool
}

func (it *Item) key() string {
	return strings.ToLower(strings.TrimSpace(it.Name))
}

func (it *Item) hasRecipe(id uuid.UUID) bool {
	for _, rid := range it.RecipeIDs {
		if rid == id {
			return true
		}
	}
	return false
}

func (it *Item) applyRetail() {
	r := RoundToRetail(it.Name, it.Quantity, it.Unit)
	it.RetailPackage = r.Package
	it.RetailPackageCount = r.Count
	it.ExactAmount = r.Exact
}

// Consolidate builds a fresh list from recipes.
func Consolidate(recipes []Recipe) []Item {
	var items []Item
	for _, r := range recipes {
		items = AddRecipe(items, r)
	}
	return items
}

// AddRecipe folds a recipe's ingredients into items and returns the updated
// list. The input slice is not modified.
func AddRecipe(items []Item, recipe Recipe) []Item {
	out := cloneItems(items)

	for _, ing := range recipe.Ingredients {
		unit := NormalizeUnit(ing.Unit)
		name := CleanName(ing.Name, unit)
		key := strings.ToLower(strings.TrimSpace(name))
		toTaste := IsToTaste(ing.Quantity, ing.Unit, ing.Name)

		idx := -1
		for i := range out {
			if out[i].key() == key {
				idx = i
				break
			}
		}

		if idx < 0 {
			item := Item{
				Name:      name,
				Category:  Categorize(ing.Name),
				RecipeIDs: []uuid.UUID{recipe.ID},
			}
			if !toTaste {
				item.Quantity = copyQuantity(ing.Quantity)
				item.Unit = unit
				item.applyRetail()
			}
			out = append(out, item)
			continue
		}

		existing := &out[idx]
		if !existing.hasRecipe(recipe.ID) {
			existing.RecipeIDs = append(existing.RecipeIDs, recipe.ID)
		}
		if toTaste {
			continue
		}

		switch {
		case existing.Quantity == nil || *existing.Quantity == 0:
			existing.Quantity = copyQuantity(ing.Quantity)
			existing.Unit = unit
		case CanCombine(existing.Unit, ing.Unit):
			q, u := addAmounts(*existing.Quantity, existing.Unit, *ing.Quantity, ing.Unit, name)
			existing.Quantity = &q
			existing.Unit = u
		default:
			// Incompatible units: the amounts are still summed under the
			// first unit seen.
			q := *existing.Quantity + *ing.Quantity
			existing.Quantity = &q
		}
		existing.applyRetail()
	}
	return out
}

// RemoveRecipe detaches a recipe from every item. Items that no longer
// belong to any recipe are dropped; amounts are left as they were.
func RemoveRecipe(items []Item, recipeID uuid.UUID) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range cloneItems(items) {
		if !it.hasRecipe(recipeID) {
			out = append(out, it)
			continue
		}
		kept := it.RecipeIDs[:0]
		for _, rid := range it.RecipeIDs {
			if rid != recipeID {
				kept = append(kept, rid)
			}
		}
		if len(kept) == 0 {
			continue
		}
		it.RecipeIDs = kept
		out = append(out, it)
	}
	return out
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.RecipeIDs = append([]uuid.UUID(nil), it.RecipeIDs...)
		it.Quantity = copyQuantity(it.Quantity)
		out[i] = it
	}
	return out
}

func copyQuantity(q *float64) *float64 {
	if q == nil {
		return nil
	}
	v := *q
	return &v
}
