package stockpurchase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

type StockPurchaseResponse struct {
	ID                 uuid.UUID `json:"id"`
	ItemName           string    `json:"item_name"`
	Supplier           string    `json:"supplier,omitempty"`
	Quantity           int64     `json:"quantity"`
	UnitPriceCents     int64     `json:"unit_price_cents"`
	TotalAmountCents   int64     `json:"total_amount_cents"`
	PurchaseDate       time.Time `json:"purchase_date"`
	ReceiptNumber      string    `json:"receipt_number,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	IsCashOutProcessed bool      `json:"is_cash_out_processed"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedBy          uuid.UUID `json:"created_by"`
}

func NewStockPurchaseResponse(s models.StockPurchase) StockPurchaseResponse {
	return StockPurchaseResponse{
		ID:                 s.ID,
		ItemName:           s.ItemName,
		Supplier:           s.Supplier,
		Quantity:           s.Quantity,
		UnitPriceCents:     s.UnitPriceCents,
		TotalAmountCents:   s.TotalAmountCents,
		PurchaseDate:       s.PurchaseDate,
		ReceiptNumber:      s.ReceiptNumber,
		Notes:              s.Notes,
		IsCashOutProcessed: s.IsCashOutProcessed,
		CreatedAt:          s.CreatedAt,
		CreatedBy:          s.CreatedBy,
	}
}

type CreateStockPurchaseInput struct {
	ItemName       string     `json:"item_name" binding:"required,max=255"`
	Supplier       string     `json:"supplier" binding:"omitempty,max=255"`
	Quantity       int64      `json:"quantity" binding:"required,gt=0"`
	UnitPriceCents int64      `json:"unit_price_cents" binding:"required,gt=0"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	ReceiptNumber  string     `json:"receipt_number" binding:"omitempty,max=100"`
	Notes          string     `json:"notes"`
}

type UpdateStockPurchaseInput struct {
	ItemName       *string    `json:"item_name" binding:"omitempty,max=255"`
	Supplier       *string    `json:"supplier" binding:"omitempty,max=255"`
	Quantity       *int64     `json:"quantity" binding:"omitempty,gt=0"`
	UnitPriceCents *int64     `json:"unit_price_cents" binding:"omitempty,gt=0"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	ReceiptNumber  *string    `json:"receipt_number" binding:"omitempty,max=100"`
	Notes          *string    `json:"notes"`
}

type StockPurchaseListResponse struct {
	StockPurchases []StockPurchaseResponse `json:"stock_purchases"`
	Total          int64                   `json:"total"`
}
