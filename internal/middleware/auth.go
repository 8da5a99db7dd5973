package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userModel "github.com/gitcodegud/backend/internal/user/model"
)

// currentUserKey is the gin context key under which the acting user is stored.
const currentUserKey = "currentUser"

// Auth returns a middleware that resolves the acting user from the X-User-ID
// header. Requests without a resolvable user proceed unauthenticated; handlers
// that require an actor reject them via CurrentUser.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.Next()
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			c.Next()
			return
		}

		var user userModel.User
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			c.Next()
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// RequireAuth returns a middleware that aborts unauthenticated requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHENTICATED",
					"message": "authentication required",
				},
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the acting user resolved by Auth, or nil.
func CurrentUser(c *gin.Context) *userModel.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*userModel.User)
	if !ok {
		return nil
	}
	return user
}

// SetCurrentUser stores the acting user on the context. Exposed for tests.
func SetCurrentUser(c *gin.Context, user *userModel.User) {
	c.Set(currentUserKey, user)
}
