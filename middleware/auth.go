package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextEmailKey is where JWTAuth stores the verified caller email.
const ContextEmailKey = "decodedEmail"

// TokenVerifier returns the email carried by a valid bearer token.
type TokenVerifier interface {
	ExtractEmail(tokenString string) (string, error)
}

// JWTAuth rejects requests without a bearer token (401) or with an invalid or
// expired one (403), and stores the caller email in the context.
func JWTAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" || tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		email, err := verifier.ExtractEmail(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}

		c.Set(ContextEmailKey, email)
		c.Next()
	}
}

// CallerEmail returns the email verified by JWTAuth, or "".
func CallerEmail(c *gin.Context) string {
	return c.GetString(ContextEmailKey)
}
