// internal/interfaces/http/middleware/terminal.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// terminalIDHeader carries the terminal session identity on every
// point-of-sale request
const terminalIDHeader = "X-Terminal-Id"

// TerminalMiddleware requires a terminal id header and stores it in the
// request context. Cart, rule selection and payment state are all keyed
// by this id.
func TerminalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := c.GetHeader(terminalIDHeader)
		if terminalID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Terminal-Id header required",
			})
			c.Abort()
			return
		}

		c.Set("terminal_id", terminalID)
		c.Next()
	}
}

// GetTerminalIDFromContext extracts the terminal id from gin context
func GetTerminalIDFromContext(c *gin.Context) string {
	terminalID, exists := c.Get("terminal_id")
	if !exists {
		return ""
	}
	return terminalID.(string)
}
