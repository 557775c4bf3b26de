package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MoveType string

const (
	MoveTypeDeposit MoveType = "deposit"
	MoveTypePayout  MoveType = "payout"
)

func (t MoveType) Valid() bool {
	return t == MoveTypeDeposit || t == MoveTypePayout
}

type MoveStatus string

const (
	MoveStatusPending   MoveStatus = "pending"
	MoveStatusConfirmed MoveStatus = "confirmed"
	MoveStatusRejected  MoveStatus = "rejected"
)

func (s MoveStatus) Valid() bool {
	switch s {
	case MoveStatusPending, MoveStatusConfirmed, MoveStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s MoveStatus) Terminal() bool {
	return s == MoveStatusConfirmed || s == MoveStatusRejected
}

// MoneyMove is a deposit or payout requiring two-person control:
// the creator may never be the one to resolve it. ConfirmedAt and
// ConfirmedBy record the resolver for both outcomes, rejection included.
type MoneyMove struct {
	ID          uuid.UUID  `gorm:"type:uuid;primarykey"`
	Type        MoveType   `gorm:"type:varchar(20);index;not null"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	AmountCents int64      `gorm:"not null"`
	Note        string     `gorm:"size:500"`
	CreatedAt   time.Time
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	ConfirmedAt *time.Time
	ConfirmedBy *uuid.UUID `gorm:"type:uuid"`
	Status      MoveStatus `gorm:"type:varchar(20);index;not null;default:'pending'"`
}

func (m *MoneyMove) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
