package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

func TestCreateConsumption_Validations(t *testing.T) {
	setupTestDB()

	u := seedUser("member", models.RoleUser)
	other := seedUser("other", models.RoleUser)
	inactive := seedInactiveUser("inactive")
	coffee := seedProduct("coffee", 200)

	_, err := CreateConsumption(u.ID, coffee.ID, 0, u.ID)
	assert.ErrorIs(t, err, ErrInvalidQty)
	_, err = CreateConsumption(u.ID, coffee.ID, -2, u.ID)
	assert.ErrorIs(t, err, ErrInvalidQty)

	_, err = CreateConsumption(uuid.New(), coffee.ID, 1, u.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = CreateConsumption(inactive.ID, coffee.ID, 1, u.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = CreateConsumption(u.ID, uuid.New(), 1, u.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// A regular user may only book against their own balance
	_, err = CreateConsumption(other.ID, coffee.ID, 1, u.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateConsumption_TreasurerForOther(t *testing.T) {
	setupTestDB()

	u := seedUser("member", models.RoleUser)
	treasurer := seedUser("treasurer", models.RoleTreasurer)
	coffee := seedProduct("coffee", 200)

	c, err := CreateConsumption(u.ID, coffee.ID, 2, treasurer.ID)
	assert.NoError(t, err)
	assert.Equal(t, u.ID, c.UserID)
	assert.Equal(t, treasurer.ID, c.CreatedBy)
	assert.Equal(t, int64(400), c.AmountCents)
}

func TestCreateConsumption_PriceSnapshot(t *testing.T) {
	setupTestDB()

	u := seedUser("member", models.RoleUser)
	t1 := seedUser("treasurer1", models.RoleTreasurer)
	t2 := seedUser("treasurer2", models.RoleTreasurer)
	admin := seedUser("admin", models.RoleAdmin)
	coffee := seedProduct("coffee", 200)

	confirmedDeposit(u, t1, t2, 2000)

	c, err := CreateConsumption(u.ID, coffee.ID, 3, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(200), c.UnitPriceCents)
	assert.Equal(t, int64(600), c.AmountCents)

	// Raising the product price must not rewrite history
	newPrice := int64(350)
	_, err = UpdateProduct(coffee.ID, ProductUpdate{PriceCents: &newPrice}, admin.ID)
	assert.NoError(t, err)

	reloaded, err := GetConsumption(c.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(200), reloaded.UnitPriceCents)
	assert.Equal(t, int64(600), reloaded.AmountCents)

	balance, err := UserBalance(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1400), balance)

	// New consumptions pick up the new price
	c2, err := CreateConsumption(u.ID, coffee.ID, 1, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(350), c2.UnitPriceCents)
}

func TestCreateConsumption_InactiveProduct(t *testing.T) {
	setupTestDB()

	u := seedUser("member", models.RoleUser)
	admin := seedUser("admin", models.RoleAdmin)
	coffee := seedProduct("coffee", 200)

	err := DeactivateProduct(coffee.ID, admin.ID)
	assert.NoError(t, err)

	_, err = CreateConsumption(u.ID, coffee.ID, 1, u.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateConsumption_Audited(t *testing.T) {
	setupTestDB()

	u := seedUser("member", models.RoleUser)
	coffee := seedProduct("coffee", 200)

	c, err := CreateConsumption(u.ID, coffee.ID, 2, u.ID)
	assert.NoError(t, err)

	entries, total, err := FindAuditEntries(AuditFilter{EntityID: &c.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, models.ActionCreate, entries[0].Action)
		assert.Equal(t, models.EntityConsumption, entries[0].Entity)
		assert.Equal(t, u.ID, entries[0].ActorID)
		assert.Contains(t, string(entries[0].Meta), "coffee")
	}
}

func TestFindConsumptions_Filters(t *testing.T) {
	setupTestDB()

	u := seedUser("member", models.RoleUser)
	other := seedUser("other", models.RoleUser)
	coffee := seedProduct("coffee", 200)
	tea := seedProduct("tea", 150)

	_, err := CreateConsumption(u.ID, coffee.ID, 1, u.ID)
	assert.NoError(t, err)
	_, err = CreateConsumption(u.ID, tea.ID, 1, u.ID)
	assert.NoError(t, err)
	_, err = CreateConsumption(other.ID, coffee.ID, 1, other.ID)
	assert.NoError(t, err)

	byUser, total, err := FindConsumptions(ConsumptionFilter{UserID: &u.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byUser, 2)

	byProduct, total, err := FindConsumptions(ConsumptionFilter{ProductID: &coffee.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byProduct, 2)
	for _, c := range byProduct {
		assert.Equal(t, coffee.ID, c.ProductID)
	}
}
