// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/domain/session"
)

// RequireSession rejects requests when no session is active. The session
// itself is stashed in the context for handlers that need the identity.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := store.Current()
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "login required",
			})
			c.Abort()
			return
		}

		c.Set("session", sess)
		c.Next()
	}
}

// RequireAdmin rejects requests unless the active session carries the admin
// role. Must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSessionFromContext(c)
		if !ok || !sess.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSessionFromContext returns the session stashed by RequireSession
func GetSessionFromContext(c *gin.Context) (session.Session, bool) {
	value, exists := c.Get("session")
	if !exists {
		return session.Session{}, false
	}
	sess, ok := value.(session.Session)
	return sess, ok
}
