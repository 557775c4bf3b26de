package export

import (
	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	exports := router.Group("/exports")
	exports.Use(middleware.TreasurerRequired())
	{
		exports.GET("/consumptions", ExportConsumptions)
		exports.GET("/money-moves", ExportMoneyMoves)
		exports.GET("/balances", ExportBalances)
		exports.GET("/audit", ExportAudit)
		exports.GET("/stock-purchases", ExportStockPurchases)
	}
}
