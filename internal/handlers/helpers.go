package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/middleware"
	"gripinvest/internal/services"
)

func currentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

func currentRole(c *gin.Context) string {
	if v, ok := c.Get(middleware.CtxRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// respondError maps service errors onto the HTTP surface. Internal errors
// are logged with detail and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	var weak *services.WeakPasswordError
	var validation *services.ValidationError

	switch {
	case errors.As(err, &weak):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Weak password", "suggestions": weak.Suggestions})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validation.Message})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, services.ErrInvalidCredential):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, services.ErrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Code expired"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	case errors.Is(err, services.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to send reset"})
	default:
		log.Printf("[handlers] internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
