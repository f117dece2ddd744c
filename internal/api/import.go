package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type ImportHandler struct {
	importer *service.ImportService
}

func NewImportHandler(importer *service.ImportService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// ImportRecipe reads the recipe on a web page and stores it. A page that
// cannot be downloaded answers 502.
func (h *ImportHandler) ImportRecipe(c *gin.Context) {
	var req types.ImportRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	recipe, err := h.importer.ImportURL(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}
