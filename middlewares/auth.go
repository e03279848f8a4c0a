package middlewares

import (
	"strings"

	"backend/utils"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and, when roles are given, enforces one of
// them. The resolved identity is placed on the context for controllers to pass
// into services explicitly.
func Auth(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(401, gin.H{"ok": false, "error": gin.H{"code": "AUTH_REQUIRED", "message": "missing or invalid token"}})
			return
		}
		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"ok": false, "error": gin.H{"code": "AUTH_REQUIRED", "message": "invalid token"}})
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(403, gin.H{"ok": false, "error": gin.H{"code": "FORBIDDEN", "message": "forbidden"}})
				return
			}
		}

		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is present but lets
// anonymous requests through. Cart endpoints accept both.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			if claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret); err == nil {
				c.Set("userId", claims.UserID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}
