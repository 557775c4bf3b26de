package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consumption is an immutable purchase record. The unit price is a
// snapshot of the product price at creation time; AmountCents is
// computed once and never derived from the live product again.
type Consumption struct {
	ID             uuid.UUID `gorm:"type:uuid;primarykey"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Qty            int64     `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
	AmountCents    int64     `gorm:"not null"`
	At             time.Time `gorm:"index;not null"`
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null"`
}

func (c *Consumption) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	return nil
}
