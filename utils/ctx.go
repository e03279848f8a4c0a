package utils

import "github.com/gin-gonic/gin"

// CurrentUserID returns the authenticated user id set by the auth middleware,
// or 0 when the request is anonymous.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	}
	return 0
}

// CurrentRole returns the authenticated user's role, or "".
func CurrentRole(c *gin.Context) string {
	v, _ := c.Get("role")
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// GuestCartID returns the cart id carried by a valid guest-cart cookie, or 0.
func GuestCartID(c *gin.Context) uint {
	v, _ := c.Get("guestCartId")
	if id, ok := v.(uint); ok {
		return id
	}
	return 0
}
