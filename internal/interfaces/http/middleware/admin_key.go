package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
)

// AdminKey guards operator endpoints with a shared secret passed as a
// query parameter. The comparison is constant-time so the key cannot
// be probed character by character.
func AdminKey(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.Admin.SecretKey
		if secret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Admin access is not configured",
			})
			c.Abort()
			return
		}

		key := c.Query("key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid admin key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
