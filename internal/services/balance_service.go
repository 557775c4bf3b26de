package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// UserBalanceEntry pairs a user with their derived balance.
type UserBalanceEntry struct {
	User         models.User `json:"user"`
	BalanceCents int64       `json:"balance_cents"`
}

// UserBalance recomputes the user's balance from source records:
// confirmed deposits minus confirmed payouts minus all consumptions.
// There is no cached balance column anywhere; this is the canonical
// (and only) derivation, so it can never drift from the event history.
func UserBalance(userID uuid.UUID) (int64, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	var balance int64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		b, err := balanceOf(tx, userID)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	return balance, err
}

// balanceOf runs both aggregate queries on the given handle so a single
// computation sees one consistent view.
func balanceOf(tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var consumptionTotal int64
	err := tx.Model(&models.Consumption{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&consumptionTotal).Error
	if err != nil {
		return 0, err
	}

	var moveTotal int64
	err = tx.Model(&models.MoneyMove{}).
		Where("user_id = ? AND status = ?", userID, models.MoveStatusConfirmed).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount_cents ELSE -amount_cents END), 0)", models.MoveTypeDeposit).
		Scan(&moveTotal).Error
	if err != nil {
		return 0, err
	}

	return moveTotal - consumptionTotal, nil
}

// AllBalances computes the balance of every active user.
func AllBalances() ([]UserBalanceEntry, error) {
	var users []models.User
	err := database.DB.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("display_name asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]UserBalanceEntry, 0, len(users))
	for _, user := range users {
		balance, err := UserBalance(user.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, UserBalanceEntry{User: user, BalanceCents: balance})
	}
	return entries, nil
}

// BalancesBelowThreshold returns active users with balance strictly below
// the threshold. The filter runs over the per-user recomputation, not a
// database aggregate, so it shares the scan semantics of UserBalance.
func BalancesBelowThreshold(thresholdCents int64) ([]UserBalanceEntry, error) {
	all, err := AllBalances()
	if err != nil {
		return nil, err
	}

	below := make([]UserBalanceEntry, 0)
	for _, entry := range all {
		if entry.BalanceCents < thresholdCents {
			below = append(below, entry)
		}
	}
	return below, nil
}

// BalancesAboveThreshold returns active users with balance at or above
// the threshold.
func BalancesAboveThreshold(thresholdCents int64) ([]UserBalanceEntry, error) {
	all, err := AllBalances()
	if err != nil {
		return nil, err
	}

	above := make([]UserBalanceEntry, 0)
	for _, entry := range all {
		if entry.BalanceCents >= thresholdCents {
			above = append(above, entry)
		}
	}
	return above, nil
}
