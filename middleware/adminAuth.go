package middleware

import (
	"context"
	"net/http"

	"visionhealth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminChecker reports whether an email belongs to an administrator.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin is the single administrator gate for every admin-only route.
// It must run after JWTAuth.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := CallerEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), email)
		if err != nil {
			utils.ContextLogger(c).Error("admin check failed", zap.String("email", email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
