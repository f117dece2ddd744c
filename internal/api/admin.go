package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// AdminHandler serves tokens and the admin dashboard.
type AdminHandler struct {
	auth    *service.AuthService
	usage   *service.UsageService
	recipes *service.RecipeService
}

func NewAdminHandler(auth *service.AuthService, usage *service.UsageService, recipes *service.RecipeService) *AdminHandler {
	return &AdminHandler{auth: auth, usage: usage, recipes: recipes}
}

// IssueToken exchanges the API key for an admin token.
func (h *AdminHandler) IssueToken(c *gin.Context) {
	var req types.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.auth.IssueToken(req.APIKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LLMMetrics returns the usage summary with the ten most recent calls.
func (h *AdminHandler) LLMMetrics(c *gin.Context) {
	ctx := c.Request.Context()
	summary, err := h.usage.Summary(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	recent, err := h.usage.RecentCalls(ctx, 10)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "recent_calls": recent})
}

func (h *AdminHandler) LLMSummary(c *gin.Context) {
	summary, err := h.usage.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Stats returns the full dashboard: usage, recipe totals and recent recipes.
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	summary, err := h.usage.Summary(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	recentCalls, err := h.usage.RecentCalls(ctx, 20)
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.recipes.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	recentRecipes, err := h.recipes.RecentRecipes(ctx, 5)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"llm": gin.H{
			"summary":      summary,
			"recent_calls": recentCalls,
		},
		"recipes": gin.H{
			"total":       stats.Total,
			"by_source":   stats.BySource,
			"by_category": stats.ByCategory,
			"recent":      recentRecipes,
		},
	})
}

// RecordUsage stores an LLM call reported by the extractor.
func (h *AdminHandler) RecordUsage(c *gin.Context) {
	var req types.UsageReport
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	usage, err := h.usage.Record(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"usage": usage})
}
