package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placepilot/internal/auth"
)

// userIDKey is the gin context key the auth middleware sets.
const userIDKey = "user_id"

// RequireAuth rejects requests without a valid bearer token and puts
// the user ID into the request context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth resolves the user ID when a valid token is present but
// lets anonymous requests through. An invalid token is still rejected,
// so a client never silently loses its personalization.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		userID, ok := bearerUserID(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the authenticated user ID, empty for anonymous.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerUserID(c *gin.Context, tokens *auth.TokenManager) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	userID, err := tokens.VerifyToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return "", false
	}
	return userID, true
}
