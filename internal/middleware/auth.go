package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-be/internal/jwt"
	"booking-be/internal/models"
)

const (
	// TokenCookie is the cookie that carries the session token
	TokenCookie = "token"

	userIDKey = "user_id"
	claimsKey = "claims"
)

// AuthMiddleware admits requests with a valid session cookie and stores the
// caller's identity on the context. The token is the only source of identity.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{Message: "Invalid token format"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{Message: "Invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Set(userIDKey, claims.ID)
		c.Next()
	}
}

// UserID returns the identity stored by AuthMiddleware
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// Claims returns the token claims stored by AuthMiddleware
func Claims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
