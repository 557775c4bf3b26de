package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// StockPurchaseInput carries the fields for creating a stock purchase.
type StockPurchaseInput struct {
	ItemName       string
	Supplier       string
	Quantity       int64
	UnitPriceCents int64
	PurchaseDate   time.Time
	ReceiptNumber  string
	Notes          string
}

// CreateStockPurchase records supplies bought for the fund. The total is
// computed once from quantity and unit price.
func CreateStockPurchase(input StockPurchaseInput, actorID uuid.UUID) (*models.StockPurchase, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQty
	}
	if input.UnitPriceCents <= 0 {
		return nil, ErrInvalidAmount
	}

	purchase := &models.StockPurchase{
		ItemName:         input.ItemName,
		Supplier:         input.Supplier,
		Quantity:         input.Quantity,
		UnitPriceCents:   input.UnitPriceCents,
		TotalAmountCents: input.Quantity * input.UnitPriceCents,
		PurchaseDate:     input.PurchaseDate,
		ReceiptNumber:    input.ReceiptNumber,
		Notes:            input.Notes,
		CreatedBy:        actorID,
	}
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = time.Now().UTC()
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionCreate, models.EntityStockPurchase, purchase.ID, map[string]interface{}{
			"item_name":          input.ItemName,
			"quantity":           input.Quantity,
			"total_amount_cents": purchase.TotalAmountCents,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// FindStockPurchases lists purchases newest-first, optionally filtered by
// cash-out state.
func FindStockPurchases(processed *bool, skip, limit int) ([]models.StockPurchase, int64, error) {
	var purchases []models.StockPurchase
	var total int64

	query := database.DB.Model(&models.StockPurchase{})
	if processed != nil {
		query = query.Where("is_cash_out_processed = ?", *processed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 100
	}

	if err := query.Order("purchase_date desc").Offset(skip).Limit(limit).Find(&purchases).Error; err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}

// GetStockPurchase returns a single purchase.
func GetStockPurchase(id uuid.UUID) (*models.StockPurchase, error) {
	var purchase models.StockPurchase
	if err := database.DB.First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// StockPurchaseUpdate carries the mutable purchase fields. Nil pointers
// are left untouched.
type StockPurchaseUpdate struct {
	ItemName       *string
	Supplier       *string
	Quantity       *int64
	UnitPriceCents *int64
	PurchaseDate   *time.Time
	ReceiptNumber  *string
	Notes          *string
}

// UpdateStockPurchase corrects an unprocessed purchase. The total is
// recomputed whenever quantity or unit price change; processed purchases
// are frozen.
func UpdateStockPurchase(id uuid.UUID, update StockPurchaseUpdate, actorID uuid.UUID) (*models.StockPurchase, error) {
	purchase, err := GetStockPurchase(id)
	if err != nil {
		return nil, err
	}
	if purchase.IsCashOutProcessed {
		return nil, ErrStockAlreadyProcessed
	}

	updates := map[string]interface{}{}
	if update.ItemName != nil {
		updates["item_name"] = *update.ItemName
	}
	if update.Supplier != nil {
		updates["supplier"] = *update.Supplier
	}
	if update.PurchaseDate != nil {
		updates["purchase_date"] = *update.PurchaseDate
	}
	if update.ReceiptNumber != nil {
		updates["receipt_number"] = *update.ReceiptNumber
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	quantity := purchase.Quantity
	if update.Quantity != nil {
		if *update.Quantity <= 0 {
			return nil, ErrInvalidQty
		}
		quantity = *update.Quantity
		updates["quantity"] = quantity
	}
	unitPrice := purchase.UnitPriceCents
	if update.UnitPriceCents != nil {
		if *update.UnitPriceCents <= 0 {
			return nil, ErrInvalidAmount
		}
		unitPrice = *update.UnitPriceCents
		updates["unit_price_cents"] = unitPrice
	}
	if update.Quantity != nil || update.UnitPriceCents != nil {
		updates["total_amount_cents"] = quantity * unitPrice
	}

	if len(updates) == 0 {
		return purchase, nil
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.StockPurchase{}).
			Where("id = ? AND is_cash_out_processed = ?", id, false).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStockAlreadyProcessed
		}
		_, err := RecordAction(tx, actorID, models.ActionUpdate, models.EntityStockPurchase, id, auditMeta(updates))
		return err
	})
	if err != nil {
		return nil, err
	}

	return GetStockPurchase(id)
}

// MarkCashOutProcessed freezes a purchase after its cash-out has been
// handled. The transition is a conditional update so double processing
// fails instead of silently re-applying.
func MarkCashOutProcessed(id uuid.UUID, actorID uuid.UUID) (*models.StockPurchase, error) {
	purchase, err := GetStockPurchase(id)
	if err != nil {
		return nil, err
	}
	if purchase.IsCashOutProcessed {
		return nil, ErrStockAlreadyProcessed
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.StockPurchase{}).
			Where("id = ? AND is_cash_out_processed = ?", id, false).
			Update("is_cash_out_processed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStockAlreadyProcessed
		}
		_, err := RecordAction(tx, actorID, models.ActionCashOut, models.EntityStockPurchase, id, map[string]interface{}{
			"total_amount_cents": purchase.TotalAmountCents,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return GetStockPurchase(id)
}

// DeleteStockPurchase removes an unprocessed purchase. Processed ones are
// part of the money history and stay.
func DeleteStockPurchase(id uuid.UUID, actorID uuid.UUID) error {
	purchase, err := GetStockPurchase(id)
	if err != nil {
		return err
	}
	if purchase.IsCashOutProcessed {
		return ErrStockAlreadyProcessed
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.StockPurchase{}, "id = ?", id).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionDelete, models.EntityStockPurchase, id, map[string]interface{}{
			"item_name": purchase.ItemName,
		})
		return err
	})
}
