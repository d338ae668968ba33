// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key the auth middleware stores the session
// user's ID under.
const UserIDKey = "user_id"

// RequireAuth rejects requests without a session user. Handlers behind it
// can read the actor ID from the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(UserIDKey, userIDStr)
		c.Next()
	}
}

// SessionUserID returns the actor ID set by RequireAuth.
func SessionUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	str, ok := id.(string)
	return str, ok && str != ""
}
