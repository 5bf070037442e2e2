package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecotrack/backend/internal/util"
)

// Middleware authenticates the Bearer token on the request and stores the
// resolved identity on the gin context for handlers downstream.
func Middleware(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.RespondUnauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			util.RespondUnauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		identity, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			util.RespondUnauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("identity", identity)
		c.Next()
	}
}
