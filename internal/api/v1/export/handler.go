package export

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tii-its/coffee-fund-app/internal/api/httperr"
	"github.com/tii-its/coffee-fund-app/internal/services"
)

func writeCSV(c *gin.Context, filename string, data []byte, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

func ExportConsumptions(c *gin.Context) {
	data, err := services.ExportConsumptionsCSV()
	writeCSV(c, "consumptions.csv", data, err)
}

func ExportMoneyMoves(c *gin.Context) {
	data, err := services.ExportMoneyMovesCSV()
	writeCSV(c, "money-moves.csv", data, err)
}

func ExportBalances(c *gin.Context) {
	data, err := services.ExportBalancesCSV()
	writeCSV(c, "balances.csv", data, err)
}

func ExportAudit(c *gin.Context) {
	data, err := services.ExportAuditCSV()
	writeCSV(c, "audit.csv", data, err)
}

func ExportStockPurchases(c *gin.Context) {
	data, err := services.ExportStockPurchasesCSV()
	writeCSV(c, "stock-purchases.csv", data, err)
}
