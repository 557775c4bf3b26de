package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

func TestRecordAction_RollsBackWithMutation(t *testing.T) {
	setupTestDB()

	actor := seedUser("admin", models.RoleAdmin)
	entityID := uuid.New()

	sentinel := errors.New("boom")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		_, err := RecordAction(tx, actor.ID, models.ActionCreate, models.EntityProduct, entityID, nil)
		if err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	// The aborted transaction leaves no trace in the trail
	_, total, err := FindAuditEntries(AuditFilter{EntityID: &entityID})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestRecordAction_MetaRoundTrip(t *testing.T) {
	setupTestDB()

	actor := seedUser("admin", models.RoleAdmin)
	entityID := uuid.New()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		_, err := RecordAction(tx, actor.ID, models.ActionUpdate, models.EntityProduct, entityID, map[string]interface{}{
			"price_cents": 250,
		})
		return err
	})
	assert.NoError(t, err)

	entries, _, err := FindAuditEntries(AuditFilter{EntityID: &entityID})
	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.JSONEq(t, `{"price_cents": 250}`, string(entries[0].Meta))
		assert.False(t, entries[0].At.IsZero())
	}
}

func TestFindAuditEntries_OrderAndFilters(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)
	treasurer := seedUser("treasurer", models.RoleTreasurer)
	productID := uuid.New()
	moveID := uuid.New()

	record := func(actorID uuid.UUID, action, entity string, entityID uuid.UUID) {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			_, err := RecordAction(tx, actorID, action, entity, entityID, nil)
			return err
		})
		assert.NoError(t, err)
	}

	record(admin.ID, models.ActionCreate, models.EntityProduct, productID)
	record(treasurer.ID, models.ActionCreate, models.EntityMoneyMove, moveID)
	record(treasurer.ID, models.ActionConfirm, models.EntityMoneyMove, moveID)

	// Newest-first; entries written in the same instant keep insertion
	// order via the sequence id tie-break
	entries, total, err := FindAuditEntries(AuditFilter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	if assert.Len(t, entries, 3) {
		assert.Equal(t, models.ActionConfirm, entries[0].Action)
		assert.Equal(t, models.ActionCreate, entries[2].Action)
		assert.Equal(t, models.EntityProduct, entries[2].Entity)
		assert.Greater(t, entries[0].ID, entries[1].ID)
		assert.Greater(t, entries[1].ID, entries[2].ID)
	}

	entity := models.EntityMoneyMove
	entries, total, err = FindAuditEntries(AuditFilter{Entity: &entity})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	entries, total, err = FindAuditEntries(AuditFilter{ActorID: &admin.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, productID, entries[0].EntityID)
	}

	// Pagination walks the same ordering
	page, total, err := FindAuditEntries(AuditFilter{Skip: 1, Limit: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	if assert.Len(t, page, 1) {
		assert.Equal(t, models.ActionCreate, page[0].Action)
		assert.Equal(t, models.EntityMoneyMove, page[0].Entity)
	}
}

func TestGetAuditEntry(t *testing.T) {
	setupTestDB()

	actor := seedUser("admin", models.RoleAdmin)
	entityID := uuid.New()

	var created *models.AuditEntry
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = RecordAction(tx, actor.ID, models.ActionCreate, models.EntityProduct, entityID, nil)
		return err
	})
	assert.NoError(t, err)

	entry, err := GetAuditEntry(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, entry.ID)
	assert.Equal(t, actor.ID, entry.ActorID)

	_, err = GetAuditEntry(99999)
	assert.ErrorIs(t, err, ErrAuditEntryNotFound)
}
