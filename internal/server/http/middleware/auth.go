package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a session token to a user ID.
type Authenticator func(token string) (string, error)

// RequireAuth rejects requests without a valid Bearer token and stores the
// token's user ID on the context.
func RequireAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		uid, err := authn(token)
		if err != nil || uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(string(userIDKey), uid)
		c.Next()
	}
}

// UserID returns the authenticated user, or "" before RequireAuth ran.
func UserID(c *gin.Context) string {
	return c.GetString(string(userIDKey))
}

func bearerToken(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
