package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the user id the auth middleware stored on the
// context. Zero means no authenticated user; callers treat that as
// not-owner.
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get("userId")
	if !ok {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}

// CurrentRole reads the role claim ("owner" or "admin"), "" when absent.
func CurrentRole(c *gin.Context) string {
	v, ok := c.Get("role")
	if !ok {
		return ""
	}
	role, ok := v.(string)
	if !ok {
		return ""
	}
	return role
}
