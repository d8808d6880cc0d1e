package middleware

import (
	"net/http"

	"github.com/ibrahimbiplob75/taskhub/services"
	"github.com/ibrahimbiplob75/taskhub/utils/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards endpoints that require an authenticated caller.
func AuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller identity when a valid token
// is present and continues anonymously otherwise. A bad token is "no
// identity", never an error.
func OptionalAuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := token.ExtractToken(c)
		if err == nil {
			if claims, err := authService.ValidateToken(tokenString); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("email", claims.Email)
			}
		}
		c.Next()
	}
}
