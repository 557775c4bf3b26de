package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleTreasurer Role = "treasurer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTreasurer, RoleAdmin:
		return true
	}
	return false
}

// CanManageFunds reports whether the role may act on other users' money.
func (r Role) CanManageFunds() bool {
	return r == RoleTreasurer || r == RoleAdmin
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primarykey"`
	DisplayName string    `gorm:"size:255;uniqueIndex;not null"`
	Email       string    `gorm:"size:255;uniqueIndex;not null"`
	QRCode      string    `gorm:"size:255"`
	Role        Role      `gorm:"type:varchar(20);not null;default:'user'"`
	IsActive    bool      `gorm:"not null;default:true"`
	IsDeleted   bool      `gorm:"not null;default:false"`
	PinHash     string    `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
