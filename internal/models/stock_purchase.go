package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockPurchase tracks supplies bought for the fund (beans, milk, filters).
// Once its cash-out has been processed the record is frozen.
type StockPurchase struct {
	ID                 uuid.UUID `gorm:"type:uuid;primarykey"`
	ItemName           string    `gorm:"size:255;index;not null"`
	Supplier           string    `gorm:"size:255"`
	Quantity           int64     `gorm:"not null"`
	UnitPriceCents     int64     `gorm:"not null"`
	TotalAmountCents   int64     `gorm:"not null"`
	PurchaseDate       time.Time `gorm:"not null"`
	ReceiptNumber      string    `gorm:"size:100"`
	Notes              string    `gorm:"type:text"`
	IsCashOutProcessed bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time
	CreatedBy          uuid.UUID `gorm:"type:uuid;not null"`
}

func (s *StockPurchase) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
