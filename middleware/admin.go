package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PabloDarma22/E-commerce/models"
)

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists || userRole != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
