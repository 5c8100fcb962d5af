// README: Firebase ID-token auth middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kanta1129/navireco/internal/infra"
)

const uidContextKey = "auth_uid"

// Auth verifies the Bearer token on every request and stores the caller's
// UID. When no verifier is configured (single-user local mode) every request
// runs as fallbackUID.
func Auth(verifier infra.TokenVerifier, fallbackUID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Set(uidContextKey, fallbackUID)
			c.Next()
			return
		}
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw == "" || raw == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(uidContextKey, token.UID)
		c.Next()
	}
}

// CallerUID returns the authenticated user ID set by Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(uidContextKey)
}
