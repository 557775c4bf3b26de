package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

func TestCreateProduct(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)

	p, err := CreateProduct("coffee", 200, admin.ID)
	assert.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, int64(200), p.PriceCents)

	_, err = CreateProduct("free coffee", 0, admin.ID)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = CreateProduct("weird coffee", -50, admin.ID)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestUpdateProduct(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)
	p := seedProduct("coffee", 200)

	name := "espresso"
	price := int64(250)
	updated, err := UpdateProduct(p.ID, ProductUpdate{Name: &name, PriceCents: &price}, admin.ID)
	assert.NoError(t, err)
	assert.Equal(t, "espresso", updated.Name)
	assert.Equal(t, int64(250), updated.PriceCents)

	bad := int64(0)
	_, err = UpdateProduct(p.ID, ProductUpdate{PriceCents: &bad}, admin.ID)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = UpdateProduct(uuid.New(), ProductUpdate{Name: &name}, admin.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeactivateProduct(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)
	p := seedProduct("coffee", 200)

	assert.NoError(t, DeactivateProduct(p.ID, admin.ID))

	// The row survives for historical consumptions to reference
	reloaded, err := GetProduct(p.ID)
	assert.NoError(t, err)
	assert.False(t, reloaded.IsActive)

	active, total, err := FindProducts(true, 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, active)

	assert.ErrorIs(t, DeactivateProduct(uuid.New(), admin.ID), ErrProductNotFound)
}
