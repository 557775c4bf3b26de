package consumption

import (
	"github.com/gin-gonic/gin"
)

// Consumptions are immutable, so there is no update or delete route.
func RegisterRoutes(router *gin.RouterGroup) {
	consumptions := router.Group("/consumptions")
	{
		consumptions.POST("", CreateConsumption)
		consumptions.GET("", ListConsumptions)
		consumptions.GET("/:id", GetConsumption)
	}
}
