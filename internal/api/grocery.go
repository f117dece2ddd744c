package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// GroceryHandler serves consolidated grocery lists.
type GroceryHandler struct {
	lists *service.GroceryService
}

func NewGroceryHandler(lists *service.GroceryService) *GroceryHandler {
	return &GroceryHandler{lists: lists}
}

func listBody(list *model.GroceryList) gin.H {
	return gin.H{"grocery_list": list, "recipe_ids": list.RecipeIDs()}
}

func (h *GroceryHandler) ListLists(c *gin.Context) {
	lists, err := h.lists.ListLists(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_lists": lists})
}

func (h *GroceryHandler) CreateList(c *gin.Context) {
	var req types.CreateGroceryListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.lists.CreateList(c.Request.Context(), req.Name, req.RecipeIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listBody(list))
}

func (h *GroceryHandler) GetList(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.lists.GetList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listBody(list))
}

// Instacart returns the list as Instacart line items.
func (h *GroceryHandler) Instacart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := h.lists.InstacartItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"line_items": items})
}

func (h *GroceryHandler) AddRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req types.AddRecipeToListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.lists.AddRecipe(c.Request.Context(), id, req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listBody(list))
}

func (h *GroceryHandler) RemoveRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	recipeID, ok := paramID(c, "recipe_id")
	if !ok {
		return
	}
	list, err := h.lists.RemoveRecipe(c.Request.Context(), id, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listBody(list))
}

func (h *GroceryHandler) ToggleItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	item, err := h.lists.ToggleItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *GroceryHandler) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	var req types.UpdateGroceryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.lists.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *GroceryHandler) DeleteList(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.lists.DeleteList(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grocery list deleted"})
}
