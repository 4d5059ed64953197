package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeBadRequest       = 40000
	CodeRouteNotFound    = 40400
	CodeItemNotFound     = 40401
	CodeSourceNotFound   = 40402
	CodeReceiptNotFound  = 40403
	CodeInternalServer   = 50000
	CodeUpstreamProtocol = 50002
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

type APIError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, APIError{
		Code:      code,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	})
}

// Markdown sends content as a downloadable markdown file.
func Markdown(c *gin.Context, fileName, content string) {
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}
