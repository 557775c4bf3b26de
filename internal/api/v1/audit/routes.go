package audit

import (
	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/audit")
	entries.Use(middleware.AdminRequired())
	{
		entries.GET("", ListAuditEntries)
		entries.GET("/:id", GetAuditEntry)
	}
}
