package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/authz"
)

// RequireRole rejects callers whose role claim does not match. Must run
// after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(CtxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}
		current, _ := v.(string)
		if current != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Admins only."})
			return
		}
		c.Next()
	}
}

// RequireAdmin is the common case.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(authz.RoleAdmin)
}
