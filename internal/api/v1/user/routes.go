package user

import (
	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", middleware.AdminRequired(), CreateUser)
		users.GET("", ListUsers)
		users.GET("/balances/all", AllBalances)
		users.GET("/balances/below-threshold", BelowThreshold)
		users.GET("/balances/above-threshold", AboveThreshold)
		users.GET("/:id", GetUser)
		users.PUT("/:id", middleware.AdminRequired(), UpdateUser)
		users.DELETE("/:id", middleware.AdminRequired(), DeleteUser)
		users.GET("/:id/balance", GetBalance)
		users.GET("/:id/qr-code", GetQRCode)
		users.PUT("/:id/pin", ChangePin)
		users.POST("/:id/pin", middleware.AdminRequired(), SetPin)
	}
}
