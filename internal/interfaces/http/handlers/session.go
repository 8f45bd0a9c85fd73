// internal/interfaces/http/handlers/session.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSessionID gets session ID from cookie or creates a new one.
// The cookie lifetime matches the cart TTL so an expired cart and an
// expired session go away together.
func getOrCreateSessionID(c *gin.Context, ttl time.Duration) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, int(ttl.Seconds()), "/", "", false, true)
	}
	return sessionID
}
