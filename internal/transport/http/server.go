package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YeswanthC7/keepkind/internal/bootstrap"
	"github.com/YeswanthC7/keepkind/internal/transport/http/handler"
	"github.com/YeswanthC7/keepkind/internal/transport/http/middleware"
	"github.com/YeswanthC7/keepkind/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())
	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.CodeRouteNotFound, "route not found")
	})

	services := app.Services
	healthHandler := handler.NewHealthHandler(app)
	itemHandler := handler.NewItemHandler(services.Items)
	sourceHandler := handler.NewSourceHandler(services.Sources, services.Embeddings)
	askHandler := handler.NewAskHandler(services.Ask)
	receiptHandler := handler.NewReceiptHandler(services.Receipts)

	router.GET("/healthz", healthHandler.Check)
	router.GET("/debug/embed", sourceHandler.ProbeEmbedding)

	router.POST("/items", itemHandler.Create)

	items := router.Group("/items/:itemId")
	items.POST("/sources/text", sourceHandler.AddText)
	items.POST("/sources/pdf", sourceHandler.AddPDF)
	items.GET("/ask", askHandler.Ask)
	items.GET("/vector/search", askHandler.VectorSearch)
	items.GET("/chunks/search", askHandler.ChunkSearch)
	items.POST("/receipt", receiptHandler.Create)
	items.GET("/receipts", receiptHandler.List)
	items.GET("/receipts/latest", receiptHandler.Latest)
	items.GET("/receipts/:receiptId", receiptHandler.Get)
	items.DELETE("/receipts/:receiptId", receiptHandler.Delete)
	items.GET("/receipts/:receiptId/export.md", receiptHandler.Export)

	router.POST("/sources/:sourceId/embed", sourceHandler.Embed)

	router.GET("/receipts/:receiptId", receiptHandler.GetGlobal)
	router.GET("/receipts/:receiptId/export.md", receiptHandler.ExportGlobal)

	return router
}
