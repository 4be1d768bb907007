package middleware

import (
	"net/http"
	"strings"
	"time"

	"pgstay-backend/config"
	"pgstay-backend/models"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards the admin route group with the session token issued at
// login. Expects "Authorization: Bearer <token>".
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		var admin models.Admin
		if err := config.DB.Where("session_token = ?", token).First(&admin).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		if admin.SessionExpires == nil || admin.SessionExpires.Before(time.Now().UTC()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("adminID", admin.ID)
		c.Next()
	}
}
