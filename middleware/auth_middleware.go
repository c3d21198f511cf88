package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhive/taskhive/services"
)

// AuthMiddleware rejects requests without a valid bearer token and puts
// the caller's id and email into the request context.
func AuthMiddleware(authService services.AuthServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
			return
		}

		scheme, rawToken, found := strings.Cut(header, " ")
		if !found || scheme != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Expected a Bearer token in the Authorization header"})
			return
		}

		claims, err := authService.ValidateToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}
