package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/display"
	"github.com/pageza/recipebox/backend/internal/nutrition"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// RecipeHandler serves the recipe collection and its trash.
type RecipeHandler struct {
	recipes *service.RecipeService
	display *service.DisplayService
	images  *service.ImageService
}

func NewRecipeHandler(recipes *service.RecipeService, displays *service.DisplayService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, display: displays, images: images}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var filter types.RecipeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DisplayRecipe returns the recipe scaled to ?servings= and converted to
// metric when ?metric=true.
func (h *RecipeHandler) DisplayRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q types.DisplayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	view := h.display.Render(c.Request.Context(), recipe, display.Options{Servings: q.Servings, Metric: q.Metric})
	c.JSON(http.StatusOK, view)
}

// RecipeNutrition estimates the recipe's nutrients in total and per serving.
func (h *RecipeHandler) RecipeNutrition(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	lines := make([]nutrition.Ingredient, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		lines = append(lines, nutrition.Ingredient{Name: ri.Ingredient.Name, Quantity: ri.Quantity, Unit: ri.Unit})
	}
	report := nutrition.Calculate(lines, nutrition.ParseServings(recipe.Servings))
	c.JSON(http.StatusOK, gin.H{"recipe_id": recipe.ID, "recipe_name": recipe.Name, "nutrition": report})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe moves a recipe to the trash.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe moved to trash"})
}

func (h *RecipeHandler) ListTrash(c *gin.Context) {
	recipes, err := h.recipes.ListTrash(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

func (h *RecipeHandler) RestoreRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.recipes.RestoreRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// PurgeTrash permanently deletes everything in the trash.
func (h *RecipeHandler) PurgeTrash(c *gin.Context) {
	n, err := h.recipes.PurgeTrash(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": n})
}

// UploadImage stores the multipart "image" file and makes it the recipe's
// main image.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.recipes.GetRecipe(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	url, err := h.images.UploadRecipeImage(ctx, id, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.recipes.SetImage(ctx, id, url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
