package services

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// HashPin hashes a PIN for storage. Plaintext PINs are never persisted.
func HashPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyUserPin checks a PIN against the user's stored hash. Users
// without a PIN set never verify.
func VerifyUserPin(userID uuid.UUID, pin string) bool {
	user, err := findActiveUser(userID)
	if err != nil || user.PinHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)) == nil
}

// ChangeUserPin replaces the user's PIN after verifying the current one.
func ChangeUserPin(userID uuid.UUID, currentPin, newPin string, actorID uuid.UUID) error {
	if !VerifyUserPin(userID, currentPin) {
		return ErrPinMismatch
	}
	return storePin(userID, newPin, actorID, "change_user_pin")
}

// SetUserPin sets the user's PIN without a current-PIN check. Admin
// operation, used for onboarding and resets.
func SetUserPin(userID uuid.UUID, newPin string, actorID uuid.UUID) error {
	if _, err := findActiveUser(userID); err != nil {
		return err
	}
	return storePin(userID, newPin, actorID, "set_user_pin")
}

func storePin(userID uuid.UUID, pin string, actorID uuid.UUID, action string) error {
	hashed, err := HashPin(pin)
	if err != nil {
		return err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).Where("id = ?", userID).Update("pin_hash", hashed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		_, err := RecordAction(tx, actorID, action, models.EntityUser, userID, map[string]interface{}{
			"target_user": userID.String(),
		})
		return err
	})
	if err != nil {
		return err
	}

	invalidateUserCache(userID)
	return nil
}
