package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionConfirm = "confirm"
	ActionReject  = "reject"
	ActionCashOut = "cash_out"
)

const (
	EntityUser          = "user"
	EntityProduct       = "product"
	EntityConsumption   = "consumption"
	EntityMoneyMove     = "money_move"
	EntityStockPurchase = "stock_purchase"
)

// AuditEntry is the append-only trail of every mutating action. Unlike
// the domain entities it keeps an autoincrement primary key: timestamps
// collide under rapid traffic, and the sequence gives newest-first
// queries a stable tie-break.
type AuditEntry struct {
	ID       uint           `gorm:"primarykey"`
	ActorID  uuid.UUID      `gorm:"type:uuid;index;not null"`
	Action   string         `gorm:"size:50;not null"`
	Entity   string         `gorm:"size:50;index;not null"`
	EntityID uuid.UUID      `gorm:"type:uuid;index;not null"`
	Meta     datatypes.JSON
	At       time.Time      `gorm:"index;not null"`
}

func (a *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if a.At.IsZero() {
		a.At = time.Now().UTC()
	}
	return nil
}
