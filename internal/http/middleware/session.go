package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tarun1516/yaakai/domain"
)

// RequireSession gates a route group on the session store: consumers
// must not touch protected state before initialization, and cart
// operations require an identity.
func RequireSession(sessions domain.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.Initialized() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service is starting up"})
			c.Abort()
			return
		}

		id := sessions.Current()
		if id == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign in required"})
			c.Abort()
			return
		}

		c.Set("user_id", id.ID)
		c.Next()
	}
}
