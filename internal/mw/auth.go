package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminIDKey is the gin context key under which RequireAuth stores the
// authenticated admin's ID.
const AdminIDKey = "adminID"

// TokenVerifier validates a bearer token and returns the admin it belongs to.
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}

// RequireAuth guards a route group behind a Bearer JWT.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		adminID, err := verifier.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Next()
	}
}
