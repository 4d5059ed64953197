package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YeswanthC7/keepkind/internal/ai"
	"github.com/YeswanthC7/keepkind/internal/app"
	"github.com/YeswanthC7/keepkind/internal/transport/http/response"
)

// writeError maps service errors onto status codes and business codes.
func writeError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrItemNotFound):
		response.Error(c, http.StatusNotFound, response.CodeItemNotFound, "item not found")
	case errors.Is(err, app.ErrSourceNotFound):
		response.Error(c, http.StatusNotFound, response.CodeSourceNotFound, "source not found")
	case errors.Is(err, app.ErrReceiptNotFound):
		response.Error(c, http.StatusNotFound, response.CodeReceiptNotFound, "receipt not found")
	case errors.Is(err, ai.ErrUpstreamProtocol):
		slog.ErrorContext(c.Request.Context(), action+" failed",
			"request_id", c.GetString(response.RequestIDKey), "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeUpstreamProtocol, "model service returned an invalid response")
	default:
		slog.ErrorContext(c.Request.Context(), action+" failed",
			"request_id", c.GetString(response.RequestIDKey), "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, action+" failed")
	}
}

func badRequest(c *gin.Context, message string) {
	response.Error(c, http.StatusBadRequest, response.CodeBadRequest, message)
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	u, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || u == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(u), nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func queryBool(c *gin.Context, key string) (bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}
