package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/grocery"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// DefaultListName is used when a list is created without a name.
const DefaultListName = "My Grocery List"

// GroceryService stores grocery lists built from recipes.
type GroceryService struct {
	db *gorm.DB
}

func NewGroceryService(db *gorm.DB) *GroceryService {
	return &GroceryService{db: db}
}

// CreateList builds a list from the given recipes. Ids of missing or
// trashed recipes are skipped; if none remain ErrNoRecipes is returned.
func (s *GroceryService) CreateList(ctx context.Context, name string, recipeIDs []uuid.UUID) (*model.GroceryList, error) {
	recipes, err := s.loadRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultListName
	}

	in := make([]grocery.Recipe, len(recipes))
	for i := range recipes {
		in[i] = toGroceryRecipe(&recipes[i])
	}

	items := grocery.Consolidate(in)
	list := model.GroceryList{Name: name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Recipes").Create(&list).Error; err != nil {
			return err
		}
		for i := range recipes {
			if err := linkRecipe(tx, list.ID, recipes[i].ID); err != nil {
				return err
			}
		}
		return saveItems(tx, list.ID, nil, items)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create grocery list: %w", err)
	}
	logger.For("grocery").Infof("Created grocery list %q with %d items from %d recipes", name, len(items), len(recipes))
	return s.GetList(ctx, list.ID)
}

// GetList loads a list with its items in order and its recipes.
func (s *GroceryService) GetList(ctx context.Context, id uuid.UUID) (*model.GroceryList, error) {
	var list model.GroceryList
	err := listWithChildren(s.db.WithContext(ctx)).First(&list, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroceryListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grocery list: %w", err)
	}
	return &list, nil
}

// ListLists returns every list, most recently updated first.
func (s *GroceryService) ListLists(ctx context.Context) ([]model.GroceryList, error) {
	var lists []model.GroceryList
	if err := listWithChildren(s.db.WithContext(ctx)).Order("updated_at DESC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to list grocery lists: %w", err)
	}
	return lists, nil
}

// AddRecipe adds a recipe's ingredients to a list. Adding a recipe that is
// already on the list changes nothing.
func (s *GroceryService) AddRecipe(ctx context.Context, listID, recipeID uuid.UUID) (*model.GroceryList, error) {
	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.loadRecipes(ctx, []uuid.UUID{recipeID})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrRecipeNotFound
	}
	for _, id := range list.RecipeIDs() {
		if id == recipeID {
			return list, nil
		}
	}

	current := fromModelItems(list.Items)
	next := grocery.AddRecipe(current, toGroceryRecipe(&recipes[0]))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := linkRecipe(tx, listID, recipeID); err != nil {
			return err
		}
		if err := saveItems(tx, listID, list.Items, next); err != nil {
			return err
		}
		return touchList(tx, listID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add recipe to grocery list: %w", err)
	}
	return s.GetList(ctx, listID)
}

// RemoveRecipe detaches a recipe from a list. Items that only came from that
// recipe are deleted; shared items keep their amounts.
func (s *GroceryService) RemoveRecipe(ctx context.Context, listID, recipeID uuid.UUID) (*model.GroceryList, error) {
	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	next := grocery.RemoveRecipe(fromModelItems(list.Items), recipeID)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec("DELETE FROM grocery_list_recipes WHERE grocery_list_id = ? AND recipe_id = ?", listID, recipeID).Error
		if err != nil {
			return err
		}
		if err := saveItems(tx, listID, list.Items, next); err != nil {
			return err
		}
		return touchList(tx, listID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove recipe from grocery list: %w", err)
	}
	return s.GetList(ctx, listID)
}

// ToggleItem flips an item's checked state.
func (s *GroceryService) ToggleItem(ctx context.Context, itemID uuid.UUID) (*model.GroceryListItem, error) {
	return s.changeItem(ctx, itemID, func(item *model.GroceryListItem) {
		item.IsChecked = !item.IsChecked
	})
}

// UpdateItem sets the fields present in req.
func (s *GroceryService) UpdateItem(ctx context.Context, itemID uuid.UUID, req types.UpdateGroceryItemRequest) (*model.GroceryListItem, error) {
	return s.changeItem(ctx, itemID, func(item *model.GroceryListItem) {
		if req.IngredientName != nil {
			item.IngredientName = *req.IngredientName
		}
		if req.Quantity != nil {
			q := *req.Quantity
			item.Quantity = &q
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if req.IsChecked != nil {
			item.IsChecked = *req.IsChecked
		}
	})
}

func (s *GroceryService) changeItem(ctx context.Context, itemID uuid.UUID, change func(*model.GroceryListItem)) (*model.GroceryListItem, error) {
	var item model.GroceryListItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroceryItemNotFound
			}
			return err
		}
		change(&item)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return touchList(tx, item.GroceryListID)
	})
	if errors.Is(err, ErrGroceryItemNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update grocery item: %w", err)
	}
	return &item, nil
}

// DeleteList removes a list with its items.
func (s *GroceryService) DeleteList(ctx context.Context, id uuid.UUID) error {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grocery_list_id = ?", id).Delete(&model.GroceryListItem{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM grocery_list_recipes WHERE grocery_list_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.GroceryList{}, "id = ?", id)
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete grocery list: %w", err)
	}
	if deleted == 0 {
		return ErrGroceryListNotFound
	}
	return nil
}

// InstacartItems exports a list in the Instacart shopping list format.
func (s *GroceryService) InstacartItems(ctx context.Context, id uuid.UUID) ([]grocery.InstacartItem, error) {
	list, err := s.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	return grocery.ToInstacart(fromModelItems(list.Items)), nil
}

func (s *GroceryService) loadRecipes(ctx context.Context, ids []uuid.UUID) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []model.Recipe
	err := withChildren(s.db.WithContext(ctx)).Where("id IN ?", ids).Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	// Keep the caller's order so item positions follow it.
	byID := make(map[uuid.UUID]model.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	ordered := make([]model.Recipe, 0, len(recipes))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func listWithChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Recipes")
}

func linkRecipe(tx *gorm.DB, listID, recipeID uuid.UUID) error {
	return tx.Exec("INSERT INTO grocery_list_recipes (grocery_list_id, recipe_id) VALUES (?, ?)", listID, recipeID).Error
}

func touchList(tx *gorm.DB, listID uuid.UUID) error {
	return tx.Model(&model.GroceryList{}).Where("id = ?", listID).Update("updated_at", time.Now()).Error
}

// saveItems writes items as the list's contents: stored items are updated,
// new ones created and rows missing from items deleted.
func saveItems(tx *gorm.DB, listID uuid.UUID, existing []model.GroceryListItem, items []grocery.Item) error {
	keep := make(map[uuid.UUID]bool, len(items))
	for i, it := range items {
		row := toModelItem(it, listID, i)
		if it.ID == uuid.Nil {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		keep[it.ID] = true
		if err := tx.Omit("created_at").Save(&row).Error; err != nil {
			return err
		}
	}
	for _, old := range existing {
		if keep[old.ID] {
			continue
		}
		if err := tx.Delete(&model.GroceryListItem{}, "id = ?", old.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

func toGroceryRecipe(r *model.Recipe) grocery.Recipe {
	out := grocery.Recipe{ID: r.ID, Ingredients: make([]grocery.Ingredient, len(r.Ingredients))}
	for i, ri := range r.Ingredients {
		out.Ingredients[i] = grocery.Ingredient{Name: ri.Ingredient.Name, Quantity: ri.Quantity, Unit: ri.Unit}
	}
	return out
}

func fromModelItems(rows []model.GroceryListItem) []grocery.Item {
	out := make([]grocery.Item, len(rows))
	for i, r := range rows {
		out[i] = grocery.Item{
			ID:                 r.ID,
			Name:               r.IngredientName,
			Quantity:           r.Quantity,
			Unit:               r.Unit,
			Category:           r.Category,
			RecipeIDs:          []uuid.UUID(r.RecipeIDs),
			RetailPackage:      r.RetailPackage,
			RetailPackageCount: r.RetailPackageCount,
			ExactAmount:        r.ExactAmount,
			Checked:            r.IsChecked,
		}
	}
	return out
}

func toModelItem(it grocery.Item, listID uuid.UUID, position int) model.GroceryListItem {
	return model.GroceryListItem{
		ID:                 it.ID,
		GroceryListID:      listID,
		IngredientName:     it.Name,
		Quantity:           it.Quantity,
		Unit:               it.Unit,
		Category:           it.Category,
		RecipeIDs:          model.UUIDArray(it.RecipeIDs),
		RetailPackage:      it.RetailPackage,
		RetailPackageCount: it.RetailPackageCount,
		ExactAmount:        it.ExactAmount,
		IsChecked:          it.Checked,
		Position:           position,
	}
}
