package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-be/internal/models"
)

// RoleChecker reports whether a user currently holds the admin role
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID uint) (bool, error)
}

// AdminMiddleware must run after AuthMiddleware. The role is read from
// storage on every request so that promotions and demotions apply at once.
func AdminMiddleware(checker RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{Message: "User not authenticated"})
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			zap.L().Error("role lookup failed", zap.Uint("user_id", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{Message: "Internal server error"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Response{Message: "Access denied. Admin only."})
			return
		}

		c.Next()
	}
}
