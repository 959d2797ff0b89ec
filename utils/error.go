package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the envelope every error reply uses. Conflict replies add
// resource_id and conflicts alongside the same "error" key, so clients can
// switch on one field. Details carries the human-readable cause when safe to
// expose.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler catches panics escaping a handler and converts them into the
// standard envelope instead of a dropped connection.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "internal error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError writes the standard envelope and logs the occurrence. Domain
// errors are expected traffic, so they log at warn, not error.
func JSONError(c *gin.Context, status int, kind string, details string) {
	GetLogger().Warn(kind, zap.Int("status", status), zap.String("details", details))
	c.JSON(status, ErrorResponse{Error: kind, Details: details})
}
