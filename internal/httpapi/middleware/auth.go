package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hu8wei/chathub/internal/auth"
)

const UserIDKey = "userID"

// Identity resolves "Authorization: Bearer <token>" into a user id stored in
// the gin context. A missing or invalid token is not a transport error: the
// request continues as anonymous and each operation rejects it downstream.
func Identity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := auth.Resolve(extractBearer(c.GetHeader("Authorization")), jwtSecret); ok {
			c.Set(UserIDKey, uid)
		}
		c.Next()
	}
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// UserID returns the authenticated user id, or 0 for anonymous callers.
func UserID(c *gin.Context) uint64 {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0
	}
	uid, ok := v.(uint64)
	if !ok {
		return 0
	}
	return uid
}
