package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/transport/http/response"
)

type AskHandler struct {
	askService *app.AskService
}

func NewAskHandler(askService *app.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

func (h *AskHandler) Ask(c *gin.Context) {
	itemID, k, ok := itemAndInt(c, "k", app.DefaultTopK)
	if !ok {
		return
	}
	result, err := h.askService.Ask(c.Request.Context(), itemID, c.Query("q"), k)
	if err != nil {
		writeError(c, err, "ask")
		return
	}
	response.OK(c, result)
}

func (h *AskHandler) VectorSearch(c *gin.Context) {
	itemID, k, ok := itemAndInt(c, "k", app.DefaultTopK)
	if !ok {
		return
	}
	rows, err := h.askService.VectorSearch(c.Request.Context(), itemID, c.Query("q"), k)
	if err != nil {
		writeError(c, err, "vector search")
		return
	}
	response.OK(c, rows)
}

func (h *AskHandler) ChunkSearch(c *gin.Context) {
	itemID, limit, ok := itemAndInt(c, "limit", app.DefaultSearchLimit)
	if !ok {
		return
	}
	rows, err := h.askService.SearchChunks(c.Request.Context(), itemID, c.Query("q"), limit)
	if err != nil {
		writeError(c, err, "chunk search")
		return
	}
	response.OK(c, rows)
}

// itemAndInt reads the itemId path param and one integer query param,
// writing a 400 itself when either is malformed.
func itemAndInt(c *gin.Context, key string, fallback int) (uint, int, bool) {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		badRequest(c, err.Error())
		return 0, 0, false
	}
	v, err := queryInt(c, key, fallback)
	if err != nil {
		badRequest(c, err.Error())
		return 0, 0, false
	}
	return itemID, v, true
}
