package services

import (
	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/models"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

// LoginWithPin authenticates a user by id and PIN and issues a session
// token. The same error comes back for unknown users, inactive users and
// wrong PINs so login attempts cannot probe the directory.
func LoginWithPin(userID uuid.UUID, pin string) (*models.User, string, error) {
	user, err := findActiveUser(userID)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.PinHash == "" || !VerifyUserPin(userID, pin) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
