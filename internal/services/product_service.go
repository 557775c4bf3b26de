package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// CreateProduct adds a product to the catalog.
func CreateProduct(name string, priceCents int64, actorID uuid.UUID) (*models.Product, error) {
	if priceCents <= 0 {
		return nil, ErrInvalidAmount
	}

	product := &models.Product{
		Name:       name,
		PriceCents: priceCents,
		IsActive:   true,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionCreate, models.EntityProduct, product.ID, map[string]interface{}{
			"name":        name,
			"price_cents": priceCents,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// FindProducts lists products, optionally restricted to active ones.
func FindProducts(activeOnly bool, skip, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := database.DB.Model(&models.Product{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 100
	}

	if err := query.Order("name asc").Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetProduct returns a single product.
func GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ProductUpdate carries the mutable product fields.
type ProductUpdate struct {
	Name       *string
	PriceCents *int64
	IsActive   *bool
}

// UpdateProduct changes catalog data. A price change only affects future
// consumptions; historical records keep their snapshot.
func UpdateProduct(id uuid.UUID, update ProductUpdate, actorID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.PriceCents != nil {
		if *update.PriceCents <= 0 {
			return nil, ErrInvalidAmount
		}
		updates["price_cents"] = *update.PriceCents
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) == 0 {
		return &product, nil
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionUpdate, models.EntityProduct, product.ID, auditMeta(updates))
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DeactivateProduct soft-deletes a product. Consumptions keep referencing
// it, so products are never hard-deleted.
func DeactivateProduct(id uuid.UUID, actorID uuid.UUID) error {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Update("is_active", false).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionDelete, models.EntityProduct, product.ID, map[string]interface{}{
			"mode": "deactivate",
		})
		return err
	})
}
