package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

type ProductResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
	}
}

type CreateProductInput struct {
	Name       string `json:"name" binding:"required,max=255"`
	PriceCents int64  `json:"price_cents" binding:"required,gt=0"`
}

type UpdateProductInput struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	PriceCents *int64  `json:"price_cents" binding:"omitempty,gt=0"`
	IsActive   *bool   `json:"is_active"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}
