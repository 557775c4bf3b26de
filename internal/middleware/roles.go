package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/models"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

// AdminRequired gates a route to admins. Must run after AuthMiddleware.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := ActingUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
			c.Abort()
			return
		}
		if user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Admin privileges required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// TreasurerRequired gates a route to treasurers and admins.
func TreasurerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := ActingUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Authentication required"))
			c.Abort()
			return
		}
		if !user.Role.CanManageFunds() {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Treasurer privileges required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
