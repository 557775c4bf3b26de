package stockpurchase

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/api/httperr"
	"github.com/tii-its/coffee-fund-app/internal/middleware"
	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid stock purchase ID"))
		return uuid.Nil, false
	}
	return id, true
}

// CreateStockPurchase records supplies bought for the fund.
func CreateStockPurchase(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	var input CreateStockPurchaseInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	serviceInput := services.StockPurchaseInput{
		ItemName:       input.ItemName,
		Supplier:       input.Supplier,
		Quantity:       input.Quantity,
		UnitPriceCents: input.UnitPriceCents,
		ReceiptNumber:  input.ReceiptNumber,
		Notes:          input.Notes,
	}
	if input.PurchaseDate != nil {
		serviceInput.PurchaseDate = *input.PurchaseDate
	} else {
		serviceInput.PurchaseDate = time.Now().UTC()
	}

	purchase, err := services.CreateStockPurchase(serviceInput, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Stock purchase created successfully", NewStockPurchaseResponse(*purchase)))
}

// ListStockPurchases returns purchases newest-first, optionally filtered
// by cash-out state.
func ListStockPurchases(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var processed *bool
	if raw, exists := c.GetQuery("processed"); exists {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid processed flag"))
			return
		}
		processed = &value
	}

	purchases, total, err := services.FindStockPurchases(processed, skip, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	items := make([]StockPurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, NewStockPurchaseResponse(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stock purchases retrieved successfully", StockPurchaseListResponse{
		StockPurchases: items,
		Total:          total,
	}))
}

// GetStockPurchase returns a single purchase.
func GetStockPurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	purchase, err := services.GetStockPurchase(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stock purchase retrieved successfully", NewStockPurchaseResponse(*purchase)))
}

// UpdateStockPurchase corrects an unprocessed purchase.
func UpdateStockPurchase(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateStockPurchaseInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	purchase, err := services.UpdateStockPurchase(id, services.StockPurchaseUpdate{
		ItemName:       input.ItemName,
		Supplier:       input.Supplier,
		Quantity:       input.Quantity,
		UnitPriceCents: input.UnitPriceCents,
		PurchaseDate:   input.PurchaseDate,
		ReceiptNumber:  input.ReceiptNumber,
		Notes:          input.Notes,
	}, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stock purchase updated successfully", NewStockPurchaseResponse(*purchase)))
}

// ProcessCashOut marks a purchase's cash-out as handled, freezing it.
func ProcessCashOut(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	purchase, err := services.MarkCashOutProcessed(id, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Cash-out processed successfully", NewStockPurchaseResponse(*purchase)))
}

// DeleteStockPurchase removes an unprocessed purchase.
func DeleteStockPurchase(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.DeleteStockPurchase(id, actor.ID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stock purchase deleted successfully", nil))
}
