package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// CreateMoneyMove opens a deposit or payout request in pending state.
// Treasurers and admins may create moves for anyone; a regular user may
// only request one for themself, and someone else still has to confirm it.
func CreateMoneyMove(moveType models.MoveType, userID uuid.UUID, amountCents int64, note string, actorID uuid.UUID) (*models.MoneyMove, error) {
	if !moveType.Valid() {
		return nil, ErrInvalidType
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	actor, err := findActiveUser(actorID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if actorID != userID && !actor.Role.CanManageFunds() {
		return nil, ErrUnauthorized
	}

	beneficiary, err := findActiveUser(userID)
	if err != nil {
		return nil, err
	}

	move := &models.MoneyMove{
		Type:        moveType,
		UserID:      beneficiary.ID,
		AmountCents: amountCents,
		Note:        note,
		CreatedBy:   actorID,
		Status:      models.MoveStatusPending,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(move).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionCreate, models.EntityMoneyMove, move.ID, map[string]interface{}{
			"type":         string(moveType),
			"user_id":      userID.String(),
			"amount_cents": amountCents,
			"note":         note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return move, nil
}

// ConfirmMoneyMove transitions a pending move to confirmed. The creator
// can never confirm their own move, regardless of role.
func ConfirmMoneyMove(id uuid.UUID, actorID uuid.UUID) (*models.MoneyMove, error) {
	return resolveMoneyMove(id, actorID, models.MoveStatusConfirmed)
}

// RejectMoneyMove transitions a pending move to rejected. Creator
// self-rejection is barred the same way as self-confirmation.
func RejectMoneyMove(id uuid.UUID, actorID uuid.UUID) (*models.MoneyMove, error) {
	return resolveMoneyMove(id, actorID, models.MoveStatusRejected)
}

// resolveMoneyMove performs the single pending->terminal transition. The
// transition itself is a conditional update on status, so when two
// resolutions race exactly one sees RowsAffected == 1; the loser gets
// ErrMoveResolvedConcurrently and no fields change twice. The audit entry
// rides in the same transaction as the update.
func resolveMoneyMove(id uuid.UUID, actorID uuid.UUID, outcome models.MoveStatus) (*models.MoneyMove, error) {
	actor, err := findActiveUser(actorID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !actor.Role.CanManageFunds() {
		return nil, ErrUnauthorized
	}

	var move models.MoneyMove
	if err := database.DB.First(&move, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMoveNotFound
		}
		return nil, err
	}

	if move.Status != models.MoveStatusPending {
		return nil, ErrMoveNotPending
	}
	if move.CreatedBy == actorID {
		return nil, ErrSelfResolution
	}

	action := models.ActionConfirm
	if outcome == models.MoveStatusRejected {
		action = models.ActionReject
	}
	now := time.Now().UTC()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.MoneyMove{}).
			Where("id = ? AND status = ?", id, models.MoveStatusPending).
			Updates(map[string]interface{}{
				"status":       outcome,
				"confirmed_at": now,
				"confirmed_by": actorID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// The pending check above passed, so someone else won the race.
			return ErrMoveResolvedConcurrently
		}

		_, err := RecordAction(tx, actorID, action, models.EntityMoneyMove, id, map[string]interface{}{
			"status": string(outcome),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := database.DB.First(&move, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &move, nil
}

// MoneyMoveFilter defines criteria for listing money moves.
type MoneyMoveFilter struct {
	UserID *uuid.UUID
	Status *models.MoveStatus
	Skip   int
	Limit  int
}

// FindMoneyMoves lists moves newest-first with optional filters.
func FindMoneyMoves(filter MoneyMoveFilter) ([]models.MoneyMove, int64, error) {
	var moves []models.MoneyMove
	var total int64

	query := database.DB.Model(&models.MoneyMove{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	if err := query.Order("created_at desc").Offset(filter.Skip).Limit(limit).Find(&moves).Error; err != nil {
		return nil, 0, err
	}

	return moves, total, nil
}

// GetMoneyMove returns a single move.
func GetMoneyMove(id uuid.UUID) (*models.MoneyMove, error) {
	var move models.MoneyMove
	if err := database.DB.First(&move, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMoveNotFound
		}
		return nil, err
	}
	return &move, nil
}

// findActiveUser loads a user that exists, is active and not deleted.
func findActiveUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive || user.IsDeleted {
		return nil, ErrUserInactive
	}
	return &user, nil
}
