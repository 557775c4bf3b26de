package moneymove

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	moves := router.Group("/money-moves")
	{
		moves.POST("", CreateMoneyMove)
		moves.GET("", ListMoneyMoves)
		moves.GET("/pending", ListPendingMoneyMoves)
		moves.GET("/:id", GetMoneyMove)
		moves.PATCH("/:id/confirm", ConfirmMoneyMove)
		moves.PATCH("/:id/reject", RejectMoneyMove)
	}
}
