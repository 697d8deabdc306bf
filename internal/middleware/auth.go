package middleware

import (
	"net/http"

	"compliance-hub/internal/models"
	"compliance-hub/internal/rbac"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID := sess.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPIAuth answers anonymous JSON clients with 401 instead of a login redirect.
func RequireAPIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Default(c).Get("user_id") == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// RequirePermission lets the request through when the session role may perform act on obj.
func RequirePermission(enf *rbac.Enforcer, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		roleStr, ok := sess.Get("role").(string)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if !enf.Allowed(models.UserRole(roleStr), obj, act) {
			c.String(http.StatusForbidden, "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}
