package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the admin dashboard key. The key itself is validated
// by the admin capability on every call; this middleware only refuses
// requests that carry none.
const AdminKeyHeader = "X-Admin-Key"

// AdminKeyContextKey is where the extracted key is stored on the context.
const AdminKeyContextKey = "adminKey"

// AdminAuthMiddleware requires an admin key header on the request.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin key required"})
			return
		}
		c.Set(AdminKeyContextKey, key)
		c.Next()
	}
}

// AdminKey returns the admin key stored by AdminAuthMiddleware.
func AdminKey(c *gin.Context) string {
	return c.GetString(AdminKeyContextKey)
}
