package product

import (
	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", middleware.AdminRequired(), CreateProduct)
		products.GET("", ListProducts)
		products.GET("/:id", GetProduct)
		products.PUT("/:id", middleware.AdminRequired(), UpdateProduct)
		products.DELETE("/:id", middleware.AdminRequired(), DeactivateProduct)
	}
}
