package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeFilter narrows a recipe listing. Empty fields are ignored.
type RecipeFilter struct {
	Query      string `form:"q"`
	Category   string `form:"category"`
	Cuisine    string `form:"cuisine"`
	SourceType string `form:"source_type"`
}

// DisplayQuery are the query parameters of the display endpoint.
type DisplayQuery struct {
	Servings int  `form:"servings" binding:"min=0,max=100"`
	Metric   bool `form:"metric"`
}

// UsageSummary aggregates successful model calls.
type UsageSummary struct {
	TotalCalls           int64   `json:"total_calls"`
	TotalInputTokens     int64   `json:"total_input_tokens"`
	TotalOutputTokens    int64   `json:"total_output_tokens"`
	TotalTokens          int64   `json:"total_tokens"`
	TotalCostUSD         float64 `json:"total_cost_usd"`
	AverageCostPerCall   float64 `json:"average_cost_per_call"`
	AverageTokensPerCall int64   `json:"average_tokens_per_call"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type RecentRecipe struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SourceType string    `json:"source_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecipeStats struct {
	Total      int64            `json:"total"`
	BySource   map[string]int64 `json:"by_source"`
	ByCategory []CategoryCount  `json:"by_category"`
}
