package consumption

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/api/httperr"
	"github.com/tii-its/coffee-fund-app/internal/middleware"
	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

// CreateConsumption records a purchase. Any user may record their own;
// recording for someone else needs treasurer or admin role.
func CreateConsumption(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	var input CreateConsumptionInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	userID, _ := uuid.Parse(input.UserID)
	productID, _ := uuid.Parse(input.ProductID)

	record, err := services.CreateConsumption(userID, productID, input.Qty, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Consumption created successfully", NewConsumptionResponse(*record)))
}

// ListConsumptions returns consumptions newest-first with optional
// user_id and product_id filters.
func ListConsumptions(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	filter := services.ConsumptionFilter{Skip: skip, Limit: limit}

	if raw, exists := c.GetQuery("user_id"); exists {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user_id"))
			return
		}
		filter.UserID = &id
	}
	if raw, exists := c.GetQuery("product_id"); exists {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product_id"))
			return
		}
		filter.ProductID = &id
	}

	consumptions, total, err := services.FindConsumptions(filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	items := make([]ConsumptionResponse, 0, len(consumptions))
	for _, record := range consumptions {
		items = append(items, NewConsumptionResponse(record))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Consumptions retrieved successfully", ConsumptionListResponse{
		Consumptions: items,
		Total:        total,
	}))
}

// GetConsumption returns a single consumption record.
func GetConsumption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid consumption ID"))
		return
	}

	record, err := services.GetConsumption(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Consumption retrieved successfully", NewConsumptionResponse(*record)))
}
