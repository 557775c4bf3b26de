package user

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
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user ID"))
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (int, int, bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid skip"))
		return 0, 0, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit"))
		return 0, 0, false
	}
	return skip, limit, true
}

// CreateUser adds a user to the directory. Admin only.
func CreateUser(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	var input CreateUserInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	role := models.Role(input.Role)
	if input.Role == "" {
		role = models.RoleUser
	}

	u, err := services.CreateUser(input.DisplayName, input.Email, role, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("User created successfully", NewUserResponse(*u)))
}

// ListUsers returns the directory, active users only by default.
func ListUsers(c *gin.Context) {
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	users, total, err := services.FindUsers(activeOnly, skip, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, NewUserResponse(u))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", UserListResponse{
		Users: items,
		Total: total,
	}))
}

// GetUser returns a single user.
func GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	u, err := services.FindUserByID(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User retrieved successfully", NewUserResponse(u)))
}

// UpdateUser changes directory fields. Admin only.
func UpdateUser(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateUserInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	update := services.UserUpdate{
		DisplayName: input.DisplayName,
		Email:       input.Email,
		QRCode:      input.QRCode,
		IsActive:    input.IsActive,
	}
	if input.Role != nil {
		role := models.Role(*input.Role)
		update.Role = &role
	}

	u, err := services.UpdateUser(id, update, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User updated successfully", NewUserResponse(*u)))
}

// DeleteUser removes a user. Admin only. Users with dependent records are
// refused unless force=true, which soft-deletes instead.
func DeleteUser(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	force := c.DefaultQuery("force", "false") == "true"

	if err := services.DeleteUser(id, actor.ID, force); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User deleted successfully", nil))
}

// GetBalance returns the user's derived balance.
func GetBalance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	u, err := services.FindUserByID(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	balance, err := services.UserBalance(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance retrieved successfully", BalanceResponse{
		User:         NewUserResponse(u),
		BalanceCents: balance,
	}))
}

// GetQRCode returns the user's id rendered as a QR code data URL.
func GetQRCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	qr, err := services.GenerateUserQRCode(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("QR code generated successfully", gin.H{"qr_code": qr}))
}

// AllBalances returns every active user with their balance.
func AllBalances(c *gin.Context) {
	entries, err := services.AllBalances()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balances retrieved successfully", balanceResponses(entries)))
}

// BelowThreshold returns active users with balance strictly below the
// threshold, default 1000 cents.
func BelowThreshold(c *gin.Context) {
	threshold, ok := parseThreshold(c)
	if !ok {
		return
	}

	entries, err := services.BalancesBelowThreshold(threshold)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balances retrieved successfully", balanceResponses(entries)))
}

// AboveThreshold returns active users with balance at or above the
// threshold.
func AboveThreshold(c *gin.Context) {
	threshold, ok := parseThreshold(c)
	if !ok {
		return
	}

	entries, err := services.BalancesAboveThreshold(threshold)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balances retrieved successfully", balanceResponses(entries)))
}

func parseThreshold(c *gin.Context) (int64, bool) {
	threshold, err := strconv.ParseInt(c.DefaultQuery("threshold_cents", "1000"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid threshold_cents"))
		return 0, false
	}
	return threshold, true
}

func balanceResponses(entries []services.UserBalanceEntry) []BalanceResponse {
	items := make([]BalanceResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, NewBalanceResponse(entry))
	}
	return items
}

// ChangePin lets a user change their own PIN after proving the current
// one. Admins may change anyone's.
func ChangePin(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if actor.ID != id && actor.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Cannot change another user's PIN"))
		return
	}

	var input ChangePinInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	if err := services.ChangeUserPin(id, input.CurrentPin, input.NewPin, actor.ID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("PIN changed successfully", nil))
}

// SetPin sets a user's PIN without the current one. Admin only.
func SetPin(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input SetPinInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	if err := services.SetUserPin(id, input.NewPin, actor.ID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("PIN set successfully", nil))
}
