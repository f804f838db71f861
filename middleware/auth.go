package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naseemhussainn/news-aggregator-api/common"
	"github.com/naseemhussainn/news-aggregator-api/models"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "token_id"
)

// JWTAuthMiddleware verifies the bearer token, confirms the token row still
// exists (logout deletes it), and attaches the user to the context.
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid token"})
			c.Abort()
			return
		}

		claims, err := common.VerifyJWT(secret, raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		var token models.Token
		if err := db.First(&token, "id = ?", claims.ID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token.ID)
		c.Next()
	}
}
