package middleware

import (
	"net/http"
	"strings"

	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

// Auth validates the Authorization header and puts the caller's user id
// into the gin context. Missing, malformed and expired tokens each get
// their own 401 message.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": service.ErrTokenMissing.Error()})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": service.ErrTokenMalformed.Error()})
			return
		}

		userID, err := service.ParseJWT(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
