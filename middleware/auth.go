package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Identity is handled by an external auth provider in front of this service;
// the trusted proxy forwards the authenticated user id in X-User-Id. The
// backend never sees credentials.

const userIDKey = "userId"

// RequireUser rejects requests that arrive without an authenticated user id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "authentication required",
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireUser.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok2 := v.(string); ok2 {
			return s
		}
	}
	return ""
}
