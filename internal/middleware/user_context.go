package middleware

import (
	"compliance-hub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CurrentUserKey = "CurrentUser"

func InjectUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				var user models.User
				if err := db.WithContext(c.Request.Context()).First(&user, uid).Error; err == nil {
					c.Set(CurrentUserKey, user)
				}
			}
		}

		c.Next()
	}
}

// CurrentUser returns the user stored by InjectUser.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
