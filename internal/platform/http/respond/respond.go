// Package respond writes error responses in the shape shared by every endpoint.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	"foodgram_backend/internal/shared/validation"
)

// Error aborts with status and a single message.
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}

// Validation aborts with 400 and the field errors of verr.
func Validation(c *gin.Context, verr *validation.Error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{
		Error:  "validation failed",
		Fields: verr.Fields,
	})
}

// Bind reports an error returned by ShouldBind*.
func Bind(c *gin.Context, err error) {
	slog.Warn("request binding failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	Validation(c, validation.FromBinding(err))
}

// Internal logs err and aborts with a generic 500.
func Internal(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "method", c.Request.Method, "path", c.FullPath())
	Error(c, http.StatusInternalServerError, "internal server error")
}
