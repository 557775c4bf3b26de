package moneymove

import (
	"time"

	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

type MoneyMoveResponse struct {
	ID          uuid.UUID         `json:"id"`
	Type        models.MoveType   `json:"type"`
	UserID      uuid.UUID         `json:"user_id"`
	AmountCents int64             `json:"amount_cents"`
	Note        string            `json:"note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CreatedBy   uuid.UUID         `json:"created_by"`
	ConfirmedAt *time.Time        `json:"confirmed_at,omitempty"`
	ConfirmedBy *uuid.UUID        `json:"confirmed_by,omitempty"`
	Status      models.MoveStatus `json:"status"`
}

func NewMoneyMoveResponse(m models.MoneyMove) MoneyMoveResponse {
	return MoneyMoveResponse{
		ID:          m.ID,
		Type:        m.Type,
		UserID:      m.UserID,
		AmountCents: m.AmountCents,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
		ConfirmedAt: m.ConfirmedAt,
		ConfirmedBy: m.ConfirmedBy,
		Status:      m.Status,
	}
}

type CreateMoneyMoveInput struct {
	Type        string `json:"type" binding:"required,oneof=deposit payout"`
	UserID      string `json:"user_id" binding:"required,uuid"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Note        string `json:"note" binding:"omitempty,max=500"`
}

type MoneyMoveListResponse struct {
	MoneyMoves []MoneyMoveResponse `json:"money_moves"`
	Total      int64               `json:"total"`
}
