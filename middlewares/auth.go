package middlewares

import (
	"crypto/subtle"

	"backend/pkg/resp"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth guards the admin surface with a static key. Real
// authentication is an external concern; this only keeps the triage
// endpoints off the public intake path. The query fallback exists for
// websocket clients, which cannot set headers.
func APIKeyAuth(validKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) != 1 {
			resp.Unauthorized(c, "invalid or missing API key")
			c.Abort()
			return
		}
		c.Next()
	}
}
