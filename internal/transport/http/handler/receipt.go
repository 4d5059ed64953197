package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/transport/http/response"
)

type ReceiptHandler struct {
	receiptService *app.ReceiptService
}

type deleteReceiptResponse struct {
	ReceiptID uint   `json:"receiptId"`
	ItemID    uint   `json:"itemId"`
	Status    string `json:"status"`
}

func NewReceiptHandler(receiptService *app.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

func (h *ReceiptHandler) Create(c *gin.Context) {
	itemID, k, ok := itemAndInt(c, "k", app.DefaultTopK)
	if !ok {
		return
	}
	receipt, err := h.receiptService.Create(c.Request.Context(), itemID, c.Query("q"), k)
	if err != nil {
		writeError(c, err, "create receipt")
		return
	}
	response.OK(c, receipt)
}

func (h *ReceiptHandler) List(c *gin.Context) {
	itemID, limit, ok := itemAndInt(c, "limit", app.DefaultReceiptListLimit)
	if !ok {
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	includeDeleted, err := queryBool(c, "includeDeleted")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	page, err := h.receiptService.List(c.Request.Context(), app.ListReceiptsInput{
		ItemID:         itemID,
		Limit:          limit,
		Offset:         offset,
		IncludeDeleted: includeDeleted,
	})
	if err != nil {
		writeError(c, err, "list receipts")
		return
	}
	response.OK(c, page)
}

func (h *ReceiptHandler) Latest(c *gin.Context) {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	receipt, err := h.receiptService.Latest(c.Request.Context(), itemID)
	if err != nil {
		writeError(c, err, "get latest receipt")
		return
	}
	response.OK(c, receipt)
}

func (h *ReceiptHandler) Get(c *gin.Context) {
	itemID, receiptID, ok := itemAndReceipt(c)
	if !ok {
		return
	}
	receipt, err := h.receiptService.Get(c.Request.Context(), itemID, receiptID)
	if err != nil {
		writeError(c, err, "get receipt")
		return
	}
	response.OK(c, receipt)
}

func (h *ReceiptHandler) Delete(c *gin.Context) {
	itemID, receiptID, ok := itemAndReceipt(c)
	if !ok {
		return
	}
	if err := h.receiptService.Delete(c.Request.Context(), itemID, receiptID); err != nil {
		writeError(c, err, "delete receipt")
		return
	}
	response.OK(c, deleteReceiptResponse{ReceiptID: receiptID, ItemID: itemID, Status: "deleted"})
}

func (h *ReceiptHandler) Export(c *gin.Context) {
	itemID, receiptID, ok := itemAndReceipt(c)
	if !ok {
		return
	}
	export, err := h.receiptService.Export(c.Request.Context(), itemID, receiptID)
	if err != nil {
		writeError(c, err, "export receipt")
		return
	}
	response.Markdown(c, export.FileName, export.Content)
}

func (h *ReceiptHandler) GetGlobal(c *gin.Context) {
	receiptID, err := parseUintParam(c, "receiptId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	receipt, err := h.receiptService.GetGlobal(c.Request.Context(), receiptID)
	if err != nil {
		writeError(c, err, "get receipt")
		return
	}
	response.OK(c, receipt)
}

func (h *ReceiptHandler) ExportGlobal(c *gin.Context) {
	receiptID, err := parseUintParam(c, "receiptId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	export, err := h.receiptService.ExportGlobal(c.Request.Context(), receiptID)
	if err != nil {
		writeError(c, err, "export receipt")
		return
	}
	response.Markdown(c, export.FileName, export.Content)
}

func itemAndReceipt(c *gin.Context) (uint, uint, bool) {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		badRequest(c, err.Error())
		return 0, 0, false
	}
	receiptID, err := parseUintParam(c, "receiptId")
	if err != nil {
		badRequest(c, err.Error())
		return 0, 0, false
	}
	return itemID, receiptID, true
}
