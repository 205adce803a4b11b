package middleware

import (
	"net/http"
	"strings"

	"lexbook/models"
	"lexbook/services/portal"

	"github.com/gin-gonic/gin"
)

// PortalSessionContextKey is where the resolved session is stored.
const PortalSessionContextKey = "portalSession"

// PortalAuthMiddleware requires a valid bearer session token and attaches the
// resolved portal session to the context.
func PortalAuthMiddleware(svc *portal.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		session, err := svc.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please sign in again."})
			return
		}

		c.Set(PortalSessionContextKey, session)
		c.Next()
	}
}

// PortalSession returns the session attached by PortalAuthMiddleware.
func PortalSession(c *gin.Context) *models.PortalSession {
	if v, ok := c.Get(PortalSessionContextKey); ok {
		if session, ok := v.(*models.PortalSession); ok {
			return session
		}
	}
	return nil
}
