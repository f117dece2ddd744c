package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/measure"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/sources"
	"github.com/pageza/recipebox/backend/internal/types"
)

// sourceBuckets are the keys reported by Stats; anything else is "unknown".
var sourceBuckets = []string{
	model.SourceYouTube,
	model.SourceInstagram,
	model.SourceTikTok,
	model.SourceFacebook,
	model.SourceWeb,
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates req and stores the recipe with its ingredients and
// instructions in a single transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.RecipeRequest) (_ *model.Recipe, err error) {
	start := time.Now()
	defer func() {
		metrics.TrackRecipeImport(sources.DetectSourceType(req.SourceURL), time.Since(start), err)
	}()

	recipe, err := buildRecipe(req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := linkIngredients(tx, recipe.Ingredients); err != nil {
			return err
		}
		return tx.Create(recipe).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	s.syncActiveRecipes(ctx)
	return s.GetRecipe(ctx, recipe.ID)
}

// GetRecipe retrieves a recipe by ID with its ingredients and instructions.
// Recipes in the trash are not found.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := withChildren(s.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes returns recipes matching filter, newest first. A free-text
// query matches names, tags and ingredient names; on postgres the matches
// are ordered by embedding distance instead.
func (s *RecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]model.Recipe, error) {
	query := withChildren(s.db.WithContext(ctx).Model(&model.Recipe{}))

	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}
	if filter.Cuisine != "" {
		query = query.Where("LOWER(cuisine) = ?", strings.ToLower(filter.Cuisine))
	}
	if filter.SourceType != "" {
		query = query.Where("source_type = ?", strings.ToLower(filter.SourceType))
	}

	order := clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}, Desc: true}}}
	q := strings.TrimSpace(filter.Query)
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ? OR id IN (?)",
			like, like,
			s.db.Table("recipe_ingredients").
				Select("recipe_ingredients.recipe_id").
				Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
				Where("LOWER(ingredients.name) LIKE ?", like),
		)
		// A single ORDER BY clause: gorm drops an Expression order when
		// further columns are merged into it.
		if s.db.Dialector.Name() == "postgres" {
			order = clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?, created_at DESC", Vars: []interface{}{GenerateEmbedding(q)}, WithoutParentheses: true},
			}
		}
	}

	var recipes []model.Recipe
	if err := query.Clauses(order).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe replaces the recipe's details, ingredients and instructions.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.RecipeRequest) (*model.Recipe, error) {
	next, err := buildRecipe(req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Recipe
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Instruction{}).Error; err != nil {
			return err
		}

		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		children, steps := next.Ingredients, next.Instructions
		next.Ingredients, next.Instructions = nil, nil
		if err := tx.Omit(clause.Associations).Save(next).Error; err != nil {
			return err
		}

		if err := linkIngredients(tx, children); err != nil {
			return err
		}
		for i := range children {
			children[i].RecipeID = id
		}
		for i := range steps {
			steps[i].RecipeID = id
		}
		if len(children) > 0 {
			if err := tx.Create(&children).Error; err != nil {
				return err
			}
		}
		if len(steps) > 0 {
			if err := tx.Create(&steps).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrRecipeNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return s.GetRecipe(ctx, id)
}

// SetImage records the recipe's main image.
func (s *RecipeService) SetImage(ctx context.Context, id uuid.UUID, url string) error {
	res := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Update("main_image_url", url)
	if res.Error != nil {
		return fmt.Errorf("failed to set recipe image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// DeleteRecipe moves a recipe to the trash.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	s.syncActiveRecipes(ctx)
	return nil
}

// ListTrash returns trashed recipes, most recently deleted first.
func (s *RecipeService) ListTrash(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trash: %w", err)
	}
	return recipes, nil
}

// RestoreRecipe takes a recipe out of the trash.
func (s *RecipeService) RestoreRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	res := s.db.WithContext(ctx).Unscoped().Model(&model.Recipe{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to restore recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrRecipeNotFound
	}
	s.syncActiveRecipes(ctx)
	return s.GetRecipe(ctx, id)
}

// PurgeTrash permanently deletes recipes that have been in the trash for at
// least olderThan, with their ingredients, instructions and grocery list
// links. It returns how many recipes were removed.
func (s *RecipeService) PurgeTrash(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Unscoped().Model(&model.Recipe{}).
		Where("deleted_at IS NOT NULL AND deleted_at <= ?", cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find trashed recipes: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var purged int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id IN ?", ids).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id IN ?", ids).Delete(&model.Instruction{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM grocery_list_recipes WHERE recipe_id IN ?", ids).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("id IN ?", ids).Delete(&model.Recipe{})
		purged = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge trash: %w", err)
	}
	return purged, nil
}

// CountRecipes counts recipes outside the trash and publishes the count as
// the active recipes gauge.
func (s *RecipeService) CountRecipes(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	metrics.UpdateRecipeCount(n)
	return n, nil
}

func (s *RecipeService) syncActiveRecipes(ctx context.Context) {
	if _, err := s.CountRecipes(ctx); err != nil {
		logger.For("recipes").WithError(err).Warn("Failed to refresh active recipe count")
	}
}

// Stats reports recipe totals by source bucket and the ten largest
// categories.
func (s *RecipeService) Stats(ctx context.Context) (*types.RecipeStats, error) {
	total, err := s.CountRecipes(ctx)
	if err != nil {
		return nil, err
	}

	var bySource []struct {
		SourceType string
		Count      int64
	}
	err = s.db.WithContext(ctx).Model(&model.Recipe{}).
		Select("source_type, COUNT(*) AS count").
		Group("source_type").
		Scan(&bySource).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes by source: %w", err)
	}

	stats := &types.RecipeStats{
		Total:      total,
		BySource:   map[string]int64{"unknown": 0},
		ByCategory: []types.CategoryCount{},
	}
	for _, b := range sourceBuckets {
		stats.BySource[b] = 0
	}
	for _, row := range bySource {
		if _, ok := stats.BySource[row.SourceType]; ok && row.SourceType != "unknown" {
			stats.BySource[row.SourceType] += row.Count
		} else {
			stats.BySource["unknown"] += row.Count
		}
	}

	err = s.db.WithContext(ctx).Model(&model.Recipe{}).
		Select("category, COUNT(*) AS count").
		Where("category <> ''").
		Group("category").
		Order("count DESC, category").
		Limit(10).
		Scan(&stats.ByCategory).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes by category: %w", err)
	}
	return stats, nil
}

// RecentRecipes lists the newest recipes.
func (s *RecipeService) RecentRecipes(ctx context.Context, limit int) ([]types.RecentRecipe, error) {
	out := []types.RecentRecipe{}
	err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Select("id, name, source_type, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent recipes: %w", err)
	}
	return out, nil
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Ingredients.Ingredient").
		Preload("Instructions", func(db *gorm.DB) *gorm.DB { return db.Order("step_number") })
}

// buildRecipe turns a request into an unsaved recipe. Ingredient rows carry
// the ingredient name in Ingredient.Name until linkIngredients resolves it.
func buildRecipe(req *types.RecipeRequest) (*model.Recipe, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}
	if err := sources.ValidateURL(req.SourceURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
	}

	sourceURL := strings.TrimSpace(req.SourceURL)
	sourceType := sources.DetectSourceType(sourceURL)
	if sourceType == model.SourceYouTube {
		if err := sources.ValidateYouTubeURL(sourceURL); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
		}
		sourceURL = sources.SanitizeURL(sourceURL)
	}

	prep, cook, total := req.PrepTime, req.CookTime, req.TotalTime
	if prep == "" {
		prep = measure.ISODuration(req.PrepMinutes)
	}
	if cook == "" {
		cook = measure.ISODuration(req.CookMinutes)
	}
	if total == "" {
		total = measure.ISODuration(req.PrepMinutes + req.CookMinutes)
	}

	recipe := &model.Recipe{
		Name:         name,
		SourceURL:    sourceURL,
		SourceType:   sourceType,
		PrepTime:     prep,
		CookTime:     cook,
		TotalTime:    total,
		Servings:     strings.TrimSpace(req.Servings),
		Category:     strings.TrimSpace(req.Category),
		Cuisine:      strings.TrimSpace(req.Cuisine),
		Calories:     req.Calories,
		MainImageURL: req.MainImageURL,
		CardColor:    req.CardColor,
		Tags:         model.JSONBStringArray(append([]string{}, req.Tags...)),
	}

	names := make([]string, 0, len(req.Ingredients)+len(req.IngredientLines))
	add := func(name string, qty *float64, unit, notes string) {
		recipe.Ingredients = append(recipe.Ingredients, model.RecipeIngredient{
			Ingredient: model.Ingredient{Name: name},
			Quantity:   qty,
			Unit:       strings.TrimSpace(unit),
			Notes:      strings.TrimSpace(notes),
			Position:   len(recipe.Ingredients),
		})
		names = append(names, name)
	}
	for _, in := range req.Ingredients {
		n := strings.TrimSpace(in.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: ingredient name is required", ErrInvalidRecipe)
		}
		if in.Quantity != nil && *in.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity for %q is negative", ErrInvalidRecipe, n)
		}
		add(n, in.Quantity, in.Unit, in.Notes)
	}
	for _, line := range req.IngredientLines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p := sources.ParseIngredient(line)
		if p.Name == "" {
			return nil, fmt.Errorf("%w: cannot read ingredient %q", ErrInvalidRecipe, line)
		}
		add(p.Name, p.Quantity, p.Unit, p.Notes)
	}

	for i, in := range req.Instructions {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			return nil, fmt.Errorf("%w: instruction %d is empty", ErrInvalidRecipe, i+1)
		}
		step := in.StepNumber
		if step <= 0 {
			step = i + 1
		}
		recipe.Instructions = append(recipe.Instructions, model.Instruction{
			StepNumber:  step,
			SectionName: strings.TrimSpace(in.SectionName),
			Description: desc,
		})
	}

	recipe.Embedding = GenerateEmbedding(recipeEmbeddingText(name, names))
	return recipe, nil
}

// linkIngredients points each row at a shared Ingredient, matching names
// without regard to case and creating the ones that do not exist yet.
func linkIngredients(tx *gorm.DB, rows []model.RecipeIngredient) error {
	for i := range rows {
		name := rows[i].Ingredient.Name
		var ing model.Ingredient
		err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).First(&ing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ing = model.Ingredient{Name: name}
			err = tx.Create(&ing).Error
		}
		if err != nil {
			return fmt.Errorf("failed to resolve ingredient %q: %w", name, err)
		}
		rows[i].IngredientID = ing.ID
		rows[i].Ingredient = model.Ingredient{}
	}
	return nil
}
