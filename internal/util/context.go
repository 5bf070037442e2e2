package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity is the authenticated caller resolved by the auth middleware
type Identity struct {
	ID    string
	Name  string
	Email string
}

// GetIdentityFromContext extracts the authenticated identity from the Gin
// context. If the caller is not authenticated it responds 401 and returns
// false.
func GetIdentityFromContext(c *gin.Context) (Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid identity in context"})
		return Identity{}, false
	}
	return id, true
}

// GetUserIDFromContext extracts just the user ID, responding 401 when absent
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	id, ok := GetIdentityFromContext(c)
	if !ok {
		return "", false
	}
	return id.ID, true
}
