package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// CreateConsumption records a purchase against a user's balance. The
// product's price is snapshotted into the record, so later price edits
// never change historical amounts. Consumptions are immutable: there is
// no update or delete path, the ledger only accumulates.
func CreateConsumption(userID, productID uuid.UUID, qty int64, actorID uuid.UUID) (*models.Consumption, error) {
	if qty <= 0 {
		return nil, ErrInvalidQty
	}

	actor, err := findActiveUser(actorID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if actorID != userID && !actor.Role.CanManageFunds() {
		return nil, ErrUnauthorized
	}

	user, err := findActiveUser(userID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = database.DB.First(&product, "id = ? AND is_active = ?", productID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	consumption := &models.Consumption{
		UserID:         user.ID,
		ProductID:      product.ID,
		Qty:            qty,
		UnitPriceCents: product.PriceCents,
		AmountCents:    qty * product.PriceCents,
		CreatedBy:      actorID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(consumption).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionCreate, models.EntityConsumption, consumption.ID, map[string]interface{}{
			"user_id":      userID.String(),
			"product_name": product.Name,
			"qty":          qty,
			"amount_cents": consumption.AmountCents,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return consumption, nil
}

// ConsumptionFilter defines criteria for listing consumptions.
type ConsumptionFilter struct {
	UserID    *uuid.UUID
	ProductID *uuid.UUID
	Skip      int
	Limit     int
}

// FindConsumptions lists consumptions newest-first with optional filters.
func FindConsumptions(filter ConsumptionFilter) ([]models.Consumption, int64, error) {
	var consumptions []models.Consumption
	var total int64

	query := database.DB.Model(&models.Consumption{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	if err := query.Order("at desc").Offset(filter.Skip).Limit(limit).Find(&consumptions).Error; err != nil {
		return nil, 0, err
	}

	return consumptions, total, nil
}

// GetConsumption returns a single consumption record.
func GetConsumption(id uuid.UUID) (*models.Consumption, error) {
	var consumption models.Consumption
	if err := database.DB.First(&consumption, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsumptionNotFound
		}
		return nil, err
	}
	return &consumption, nil
}
