package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/transport/http/response"
)

type ItemHandler struct {
	itemService *app.ItemService
}

type CreateItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type itemResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func NewItemHandler(itemService *app.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	item, err := h.itemService.Create(c.Request.Context(), app.CreateItemInput{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		writeError(c, err, "create item")
		return
	}
	response.OK(c, itemResponse{ID: item.ID, Name: item.Name, Category: item.Category})
}
