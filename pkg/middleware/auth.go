package middleware

import (
	"net/http"
	"strings"

	"inkpress/pkg/baas"
	"inkpress/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a bearer token and hands it to the facade through
// the request context. With a jwtService the token is also verified locally
// and its claims are exposed as "user_id" and "email"; without one the
// backend verifies it on use.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		if jwtService != nil {
			claims, err := jwtService.ValidateUserToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
			c.Set("user_id", claims.UserID())
			c.Set("email", claims.Email)
		}

		c.Request = c.Request.WithContext(baas.ContextWithAccessToken(c.Request.Context(), token))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
