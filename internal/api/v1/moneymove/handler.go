package moneymove

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/api/httperr"
	"github.com/tii-its/coffee-fund-app/internal/middleware"
	"github.com/tii-its/coffee-fund-app/internal/models"
	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid money move ID"))
		return uuid.Nil, false
	}
	return id, true
}

// CreateMoneyMove opens a pending deposit or payout request.
func CreateMoneyMove(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	var input CreateMoneyMoveInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	userID, _ := uuid.Parse(input.UserID)

	move, err := services.CreateMoneyMove(models.MoveType(input.Type), userID, input.AmountCents, input.Note, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Money move created successfully", NewMoneyMoveResponse(*move)))
}

// ListMoneyMoves returns moves newest-first with optional user_id and
// status filters.
func ListMoneyMoves(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	filter := services.MoneyMoveFilter{Skip: skip, Limit: limit}

	if raw, exists := c.GetQuery("user_id"); exists {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user_id"))
			return
		}
		filter.UserID = &id
	}
	if raw, exists := c.GetQuery("status"); exists {
		status := models.MoveStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid status"))
			return
		}
		filter.Status = &status
	}

	moves, total, err := services.FindMoneyMoves(filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Money moves retrieved successfully", MoneyMoveListResponse{
		MoneyMoves: moveResponses(moves),
		Total:      total,
	}))
}

// ListPendingMoneyMoves returns the confirmation queue.
func ListPendingMoneyMoves(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	pending := models.MoveStatusPending
	moves, total, err := services.FindMoneyMoves(services.MoneyMoveFilter{
		Status: &pending,
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Pending money moves retrieved successfully", MoneyMoveListResponse{
		MoneyMoves: moveResponses(moves),
		Total:      total,
	}))
}

// GetMoneyMove returns a single move.
func GetMoneyMove(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	move, err := services.GetMoneyMove(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Money move retrieved successfully", NewMoneyMoveResponse(*move)))
}

// ConfirmMoneyMove resolves a pending move as confirmed. The creator can
// never confirm their own request.
func ConfirmMoneyMove(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	move, err := services.ConfirmMoneyMove(id, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Money move confirmed successfully", NewMoneyMoveResponse(*move)))
}

// RejectMoneyMove resolves a pending move as rejected.
func RejectMoneyMove(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	move, err := services.RejectMoneyMove(id, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Money move rejected successfully", NewMoneyMoveResponse(*move)))
}

func moveResponses(moves []models.MoneyMove) []MoneyMoveResponse {
	items := make([]MoneyMoveResponse, 0, len(moves))
	for _, m := range moves {
		items = append(items, NewMoneyMoveResponse(m))
	}
	return items
}
