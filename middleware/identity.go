package middleware

import (
	"net/http"
	"strings"

	"closetcircle/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmailKey is the gin context key holding the verified email of the caller.
const EmailKey = "email"

// OptionalIdentityMiddleware accepts anonymous requests. When a bearer token is
// present it must be valid, and its email claim is stored under EmailKey.
func OptionalIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
			return
		}

		email, err := utils.ExtractEmailFromToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			zap.L().Debug("Rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(EmailKey, email)
		c.Next()
	}
}

// VerifiedEmail returns the email set by OptionalIdentityMiddleware, or "".
func VerifiedEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}
