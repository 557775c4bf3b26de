package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/api/httperr"
	"github.com/tii-its/coffee-fund-app/internal/api/v1/user"
	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

type LoginInput struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Pin    string `json:"pin" binding:"required,min=4,max=32"`
}

type LoginResponse struct {
	User  user.UserResponse `json:"user"`
	Token string            `json:"token"`
}

// Login authenticates a user by id and PIN and returns a session token.
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	userID, _ := uuid.Parse(input.UserID)

	u, token, err := services.LoginWithPin(userID, input.Pin)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Login successful", LoginResponse{
		User:  user.NewUserResponse(*u),
		Token: token,
	}))
}

// Logout revokes the current token until it expires on its own.
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired token"))
		return
	}

	if err := services.AddToDenylist(tokenString, utils.TokenRemainingTTL(claims)); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revoke token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
