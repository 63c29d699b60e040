package middleware

import (
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const adminSessionKey = "is_admin"

// AdminRequired gates the admin surface. A request passes with either an
// authenticated admin session or the shared ADMIN_KEY in the X-Admin-Key
// header (useful for scripts).
func AdminRequired(c *gin.Context) {
	session := sessions.Default(c)
	if admin, ok := session.Get(adminSessionKey).(bool); ok && admin {
		c.Next()
		return
	}

	adminKey := os.Getenv("ADMIN_KEY")
	if adminKey != "" && c.GetHeader("X-Admin-Key") == adminKey {
		c.Next()
		return
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// GrantAdminSession marks the current session as admin.
func GrantAdminSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Set(adminSessionKey, true)
	return session.Save()
}

// RevokeAdminSession clears the admin flag from the current session.
func RevokeAdminSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(adminSessionKey)
	return session.Save()
}
