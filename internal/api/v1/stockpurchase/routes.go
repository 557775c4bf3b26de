package stockpurchase

import (
	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	purchases := router.Group("/stock-purchases")
	purchases.Use(middleware.TreasurerRequired())
	{
		purchases.POST("", CreateStockPurchase)
		purchases.GET("", ListStockPurchases)
		purchases.GET("/:id", GetStockPurchase)
		purchases.PUT("/:id", UpdateStockPurchase)
		purchases.PATCH("/:id/cash-out", ProcessCashOut)
		purchases.DELETE("/:id", DeleteStockPurchase)
	}
}
