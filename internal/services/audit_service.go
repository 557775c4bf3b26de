package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// RecordAction appends an audit entry on the caller's transaction handle.
// Mutations pass their open tx so the mutation and its audit entry commit
// or roll back together; an audit write that cannot be persisted fails
// the whole operation.
func RecordAction(tx *gorm.DB, actorID uuid.UUID, action, entity string, entityID uuid.UUID, meta map[string]interface{}) (*models.AuditEntry, error) {
	entry := &models.AuditEntry{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now().UTC(),
	}

	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		entry.Meta = datatypes.JSON(raw)
	}

	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// AuditFilter defines criteria for querying the audit trail.
type AuditFilter struct {
	ActorID  *uuid.UUID
	Entity   *string
	EntityID *uuid.UUID
	Skip     int
	Limit    int
}

// FindAuditEntries returns matching entries newest-first. Ties on the
// timestamp are broken by the insertion sequence, not wall clock alone.
func FindAuditEntries(filter AuditFilter) ([]models.AuditEntry, int64, error) {
	var entries []models.AuditEntry
	var total int64

	query := database.DB.Model(&models.AuditEntry{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Entity != nil {
		query = query.Where("entity = ?", *filter.Entity)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	if err := query.Order("at desc, id desc").Offset(filter.Skip).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// GetAuditEntry returns a single entry by its sequence id.
func GetAuditEntry(id uint) (*models.AuditEntry, error) {
	var entry models.AuditEntry
	if err := database.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}
