package consumption

import (
	"time"

	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

type ConsumptionResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	ProductID      uuid.UUID `json:"product_id"`
	Qty            int64     `json:"qty"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	AmountCents    int64     `json:"amount_cents"`
	At             time.Time `json:"at"`
	CreatedBy      uuid.UUID `json:"created_by"`
}

func NewConsumptionResponse(c models.Consumption) ConsumptionResponse {
	return ConsumptionResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		ProductID:      c.ProductID,
		Qty:            c.Qty,
		UnitPriceCents: c.UnitPriceCents,
		AmountCents:    c.AmountCents,
		At:             c.At,
		CreatedBy:      c.CreatedBy,
	}
}

type CreateConsumptionInput struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	ProductID string `json:"product_id" binding:"required,uuid"`
	Qty       int64  `json:"qty" binding:"required,gt=0"`
}

type ConsumptionListResponse struct {
	Consumptions []ConsumptionResponse `json:"consumptions"`
	Total        int64                 `json:"total"`
}
