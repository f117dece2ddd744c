package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeRequest is the body for creating or replacing a recipe. Ingredients
// may be given structured, as raw lines ("2 cups flour, sifted"), or both.
type RecipeRequest struct {
	Name            string             `json:"name" binding:"required,max=255"`
	SourceURL       string             `json:"source_url" binding:"required"`
	PrepTime        string             `json:"prep_time"`
	CookTime        string             `json:"cook_time"`
	TotalTime       string             `json:"total_time"`
	PrepMinutes     int                `json:"prep_minutes"`
	CookMinutes     int                `json:"cook_minutes"`
	Servings        string             `json:"servings"`
	Category        string             `json:"category"`
	Cuisine         string             `json:"cuisine"`
	Calories        *int               `json:"calories"`
	MainImageURL    string             `json:"main_image_url"`
	CardColor       string             `json:"card_color"`
	Tags            []string           `json:"tags"`
	Ingredients     []IngredientInput  `json:"ingredients"`
	IngredientLines []string           `json:"ingredient_lines"`
	Instructions    []InstructionInput `json:"instructions"`
}

// ImportRecipeRequest asks the server to read a recipe from a web page.
type ImportRecipeRequest struct {
	URL string `json:"url" binding:"required"`
}

type IngredientInput struct {
	Name     string   `json:"name" binding:"required"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Notes    string   `json:"notes"`
}

type InstructionInput struct {
	StepNumber  int    `json:"step_number"`
	SectionName string `json:"section_name"`
	Description string `json:"description" binding:"required"`
}

// Grocery list API types
type CreateGroceryListRequest struct {
	Name      string      `json:"name" binding:"max=255"`
	RecipeIDs []uuid.UUID `json:"recipe_ids" binding:"required,min=1"`
}

type AddRecipeToListRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
}

// UpdateGroceryItemRequest only changes the fields that are present.
type UpdateGroceryItemRequest struct {
	IngredientName *string  `json:"ingredient_name"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
	Category       *string  `json:"category"`
	IsChecked      *bool    `json:"is_checked"`
}

// UsageReport is sent by the recipe extractor after each model call.
type UsageReport struct {
	Model        string `json:"model" binding:"required"`
	InputTokens  int    `json:"input_tokens" binding:"min=0"`
	OutputTokens int    `json:"output_tokens" binding:"min=0"`
	Status       string `json:"status" binding:"omitempty,oneof=success failed"`
	Error        string `json:"error"`
}

type TokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
