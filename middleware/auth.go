package middleware

import (
	"strings"

	"guaravita-backend/services"
	"guaravita-backend/utils"

	"github.com/gin-gonic/gin"
)

const sessionIDKey = "session_id"

// AdminRequired guards the admin route group: Bearer token from the
// password gate, session still live in the session store.
func AdminRequired(jwtSecret string, sessions *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.Unauthorized(c, "Missing admin token")
			c.Abort()
			return
		}

		sid, err := utils.ParseAdminToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.Unauthorized(c, "Invalid admin token")
			c.Abort()
			return
		}

		if !sessions.Valid(c.Request.Context(), sid) {
			utils.Unauthorized(c, "Session expired")
			c.Abort()
			return
		}

		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// SessionID returns the admin session ID set by AdminRequired.
func SessionID(c *gin.Context) string {
	sid, _ := c.Get(sessionIDKey)
	s, _ := sid.(string)
	return s
}

// RequireConfigured answers 503 on every ledger route while the
// persistence backend is not configured.
func RequireConfigured(configured bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !configured {
			utils.ServiceUnavailable(c, "Backend not configured")
			c.Abort()
			return
		}
		c.Next()
	}
}
