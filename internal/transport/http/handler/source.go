package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/transport/http/response"
)

const maxPDFSize = 10 << 20

type SourceHandler struct {
	sourceService    *app.SourceService
	embeddingService *app.EmbeddingService
}

type AddTextSourceRequest struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	TrustLevel string `json:"trustLevel"`
}

func NewSourceHandler(sourceService *app.SourceService, embeddingService *app.EmbeddingService) *SourceHandler {
	return &SourceHandler{
		sourceService:    sourceService,
		embeddingService: embeddingService,
	}
}

func (h *SourceHandler) AddText(c *gin.Context) {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var req AddTextSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	result, err := h.sourceService.AddText(c.Request.Context(), app.AddTextSourceInput{
		ItemID:     itemID,
		Title:      req.Title,
		Text:       req.Text,
		TrustLevel: req.TrustLevel,
	})
	if err != nil {
		writeError(c, err, "add text source")
		return
	}
	response.OK(c, result)
}

func (h *SourceHandler) AddPDF(c *gin.Context) {
	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "missing file")
		return
	}
	if file.Size > maxPDFSize {
		badRequest(c, "file too large (max 10MB)")
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		badRequest(c, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		badRequest(c, "cannot read file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPDFSize+1))
	if err != nil {
		badRequest(c, "cannot read file")
		return
	}

	result, err := h.sourceService.AddPDF(c.Request.Context(), app.AddPDFSourceInput{
		ItemID:     itemID,
		Title:      c.PostForm("title"),
		FileName:   file.Filename,
		TrustLevel: c.PostForm("trustLevel"),
		Data:       data,
	})
	if err != nil {
		writeError(c, err, "add pdf source")
		return
	}
	response.OK(c, result)
}

func (h *SourceHandler) Embed(c *gin.Context) {
	sourceID, err := parseUintParam(c, "sourceId")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	all, err := queryBool(c, "all")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.embeddingService.EmbedSource(c.Request.Context(), sourceID, all)
	if err != nil {
		writeError(c, err, "embed source")
		return
	}
	response.OK(c, result)
}

func (h *SourceHandler) ProbeEmbedding(c *gin.Context) {
	probe, err := h.embeddingService.Probe(c.Request.Context(), c.Query("text"))
	if err != nil {
		writeError(c, err, "embed probe")
		return
	}
	response.OK(c, probe)
}
