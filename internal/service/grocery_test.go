package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

type groceryFixture struct {
	recipes *service.RecipeService
	lists   *service.GroceryService
	first   *model.Recipe
	second  *model.Recipe
}

func setupGrocery(t *testing.T) groceryFixture {
	db := testhelpers.SetupSQLiteDB(t)
	f := groceryFixture{
		recipes: service.NewRecipeService(db),
		lists:   service.NewGroceryService(db),
	}
	ctx := context.Background()

	var err error
	f.first, err = f.recipes.CreateRecipe(ctx, &types.RecipeRequest{
		Name:      "Custard",
		SourceURL: "https://example.com/custard",
		Ingredients: []types.IngredientInput{
			{Name: "milk", Quantity: ptr(2), Unit: "cups"},
			{Name: "salt", Quantity: ptr(1), Unit: "tsp"},
			{Name: "eggs", Quantity: ptr(3)},
			{Name: "chicken breast", Quantity: ptr(1), Unit: "lb"},
		},
	})
	require.NoError(t, err)

	f.second, err = f.recipes.CreateRecipe(ctx, &types.RecipeRequest{
		Name:      "Pot Pie",
		SourceURL: "https://example.com/pot-pie",
		Ingredients: []types.IngredientInput{
			{Name: "Whole Milk", Quantity: ptr(1), Unit: "cup"},
			{Name: "Salt"},
			{Name: "chicken breast", Quantity: ptr(8), Unit: "oz"},
		},
	})
	require.NoError(t, err)
	return f
}

func itemNamed(t *testing.T, list *model.GroceryList, name string) model.GroceryListItem {
	t.Helper()
	for _, it := range list.Items {
		if it.IngredientName == name {
			return it
		}
	}
	t.Fatalf("no item %q in list", name)
	return model.GroceryListItem{}
}

func TestCreateGroceryList(t *testing.T) {
	f := setupGrocery(t)
	ctx := context.Background()

	list, err := f.lists.CreateList(ctx, "", []uuid.UUID{f.first.ID, f.second.ID, uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, service.DefaultListName, list.Name)
	assert.ElementsMatch(t, []uuid.UUID{f.first.ID, f.second.ID}, list.RecipeIDs())
	require.Len(t, list.Items, 4)

	milk := list.Items[0]
	assert.Equal(t, "Milk", milk.IngredientName)
	assert.Equal(t, 0, milk.Position)
	assert.Equal(t, 3.0, *milk.Quantity)
	assert.Equal(t, "cup", milk.Unit)
	assert.Equal(t, "1 quart", milk.RetailPackage)
	assert.Equal(t, "3 cup", milk.ExactAmount)
	assert.ElementsMatch(t, []uuid.UUID{f.first.ID, f.second.ID}, []uuid.UUID(milk.RecipeIDs))

	salt := itemNamed(t, list, "Salt")
	assert.Nil(t, salt.Quantity)
	assert.Equal(t, "Pantry", salt.Category)
}

func TestCreateGroceryListNoRecipes(t *testing.T) {
	f := setupGrocery(t)
	ctx := context.Background()

	_, err := f.lists.CreateList(ctx, "Empty", []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, service.ErrNoRecipes)

	require.NoError(t, f.recipes.DeleteRecipe(ctx, f.first.ID))
	_, err = f.lists.CreateList(ctx, "Trashed", []uuid.UUID{f.first.ID})
	assert.ErrorIs(t, err, service.ErrNoRecipes)
}

func TestAddAndRemoveRecipe(t *testing.T) {
	f := setupGrocery(t)
	ctx := context.Background()

	list, err := f.lists.CreateList(ctx, "Week", []uuid.UUID{f.first.ID})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	milkID := list.Items[0].ID

	_, err = f.lists.ToggleItem(ctx, milkID)
	require.NoError(t, err)

	list, err = f.lists.AddRecipe(ctx, list.ID, f.second.ID)
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	milk := itemNamed(t, list, "Milk")
	assert.Equal(t, milkID, milk.ID, "existing items keep their id")
	assert.True(t, milk.IsChecked, "existing items keep their checked state")
	assert.Equal(t, 3.0, *milk.Quantity)
	assert.Len(t, list.RecipeIDs(), 2)

	again, err := f.lists.AddRecipe(ctx, list.ID, f.second.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, *itemNamed(t, again, "Milk").Quantity, "adding twice changes nothing")

	_, err = f.lists.AddRecipe(ctx, list.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	list, err = f.lists.RemoveRecipe(ctx, list.ID, f.first.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.second.ID}, list.RecipeIDs())

	names := make([]string, 0, len(list.Items))
	for _, it := range list.Items {
		names = append(names, it.IngredientName)
		assert.Equal(t, []uuid.UUID{f.second.ID}, []uuid.UUID(it.RecipeIDs))
	}
	assert.ElementsMatch(t, []string{"Milk", "Salt", "Chicken breast"}, names)
	assert.Equal(t, 3.0, *itemNamed(t, list, "Milk").Quantity, "amounts are not recalculated on removal")
}

func TestUpdateAndToggleItem(t *testing.T) {
	f := setupGrocery(t)
	ctx := context.Background()

	list, err := f.lists.CreateList(ctx, "Week", []uuid.UUID{f.first.ID})
	require.NoError(t, err)
	item := list.Items[2]

	toggled, err := f.lists.ToggleItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsChecked)
	toggled, err = f.lists.ToggleItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsChecked)

	name := "Large eggs"
	updated, err := f.lists.UpdateItem(ctx, item.ID, types.UpdateGroceryItemRequest{
		IngredientName: &name,
		Quantity:       ptr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "Large eggs", updated.IngredientName)
	assert.Equal(t, 12.0, *updated.Quantity)
	assert.Equal(t, item.Category, updated.Category, "absent fields are left alone")

	reloaded, err := f.lists.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, !reloaded.UpdatedAt.Before(list.UpdatedAt))

	_, err = f.lists.ToggleItem(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrGroceryItemNotFound)
}

func TestListListsAndDelete(t *testing.T) {
	f := setupGrocery(t)
	ctx := context.Background()

	older, err := f.lists.CreateList(ctx, "Older", []uuid.UUID{f.first.ID})
	require.NoError(t, err)
	newer, err := f.lists.CreateList(ctx, "Newer", []uuid.UUID{f.second.ID})
	require.NoError(t, err)

	_, err = f.lists.ToggleItem(ctx, older.Items[0].ID)
	require.NoError(t, err)

	lists, err := f.lists.ListLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, older.ID, lists[0].ID, "touched list sorts first")
	assert.Equal(t, newer.ID, lists[1].ID)

	require.NoError(t, f.lists.DeleteList(ctx, older.ID))
	assert.ErrorIs(t, f.lists.DeleteList(ctx, older.ID), service.ErrGroceryListNotFound)
	_, err = f.lists.GetList(ctx, older.ID)
	assert.ErrorIs(t, err, service.ErrGroceryListNotFound)
}

func TestInstacartItems(t *testing.T) {
	f := setupGrocery(t)
	ctx := context.Background()

	list, err := f.lists.CreateList(ctx, "Week", []uuid.UUID{f.first.ID, f.second.ID})
	require.NoError(t, err)

	items, err := f.lists.InstacartItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "milk", items[0].Name)
	assert.Equal(t, "Milk", items[0].DisplayText)
	assert.Equal(t, "1 quart", items[0].SuggestedPackage)

	_, err = f.lists.InstacartItems(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrGroceryListNotFound)
}
