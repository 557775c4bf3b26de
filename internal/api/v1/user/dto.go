package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/models"
	"github.com/tii-its/coffee-fund-app/internal/services"
)

type UserResponse struct {
	ID          uuid.UUID   `json:"id"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email"`
	QRCode      string      `json:"qr_code,omitempty"`
	Role        models.Role `json:"role"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		QRCode:      u.QRCode,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

type CreateUserInput struct {
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"omitempty,oneof=user treasurer admin"`
}

type UpdateUserInput struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	QRCode      *string `json:"qr_code"`
	Role        *string `json:"role" binding:"omitempty,oneof=user treasurer admin"`
	IsActive    *bool   `json:"is_active"`
}

type ChangePinInput struct {
	CurrentPin string `json:"current_pin" binding:"required,min=4,max=32"`
	NewPin     string `json:"new_pin" binding:"required,min=4,max=32"`
}

type SetPinInput struct {
	NewPin string `json:"new_pin" binding:"required,min=4,max=32"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

type BalanceResponse struct {
	User         UserResponse `json:"user"`
	BalanceCents int64        `json:"balance_cents"`
}

func NewBalanceResponse(entry services.UserBalanceEntry) BalanceResponse {
	return BalanceResponse{
		User:         NewUserResponse(entry.User),
		BalanceCents: entry.BalanceCents,
	}
}
