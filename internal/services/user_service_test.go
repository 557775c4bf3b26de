package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

func TestCreateUser(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)

	u, err := CreateUser("alice", "alice@example.com", models.RoleUser, admin.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.True(t, u.IsActive)

	// Display name and email are both unique
	_, err = CreateUser("alice", "someone@example.com", models.RoleUser, admin.ID)
	assert.ErrorIs(t, err, ErrDuplicateUser)
	_, err = CreateUser("alice2", "alice@example.com", models.RoleUser, admin.ID)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// Unknown roles fall back to the plain member role
	u2, err := CreateUser("bob", "bob@example.com", models.Role("superuser"), admin.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, u2.Role)

	entries, _, err := FindAuditEntries(AuditFilter{EntityID: &u.ID})
	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, models.ActionCreate, entries[0].Action)
		assert.Equal(t, models.EntityUser, entries[0].Entity)
		assert.Equal(t, admin.ID, entries[0].ActorID)
	}
}

func TestUpdateUser(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)
	u := seedUser("alice", models.RoleUser)

	name := "alice-renamed"
	role := models.RoleTreasurer
	updated, err := UpdateUser(u.ID, UserUpdate{DisplayName: &name, Role: &role}, admin.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice-renamed", updated.DisplayName)
	assert.Equal(t, models.RoleTreasurer, updated.Role)

	_, err = UpdateUser(uuid.New(), UserUpdate{DisplayName: &name}, admin.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	bad := models.Role("superuser")
	_, err = UpdateUser(u.ID, UserUpdate{Role: &bad}, admin.ID)
	assert.Error(t, err)
}

func TestUpdateUser_LastAdminGuard(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)

	// Neither demotion nor deactivation may remove the only admin
	role := models.RoleUser
	_, err := UpdateUser(admin.ID, UserUpdate{Role: &role}, admin.ID)
	assert.ErrorIs(t, err, ErrLastAdmin)

	inactive := false
	_, err = UpdateUser(admin.ID, UserUpdate{IsActive: &inactive}, admin.ID)
	assert.ErrorIs(t, err, ErrLastAdmin)

	// With a second admin in place the demotion goes through
	other := seedUser("admin2", models.RoleAdmin)
	updated, err := UpdateUser(admin.ID, UserUpdate{Role: &role}, other.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, updated.Role)
}

func TestDeleteUser_HardWithoutRecords(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)
	u := seedUser("alice", models.RoleUser)

	err := DeleteUser(u.ID, admin.ID, false)
	assert.NoError(t, err)

	// The row is gone, not just flagged
	err = database.DB.First(&models.User{}, "id = ?", u.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	entries, _, err := FindAuditEntries(AuditFilter{EntityID: &u.ID})
	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, models.ActionDelete, entries[0].Action)
		assert.Contains(t, string(entries[0].Meta), "hard")
	}
}

func TestDeleteUser_BlockedByRecords(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)
	u := seedUser("alice", models.RoleUser)
	coffee := seedProduct("coffee", 200)

	_, err := CreateConsumption(u.ID, coffee.ID, 1, u.ID)
	assert.NoError(t, err)

	err = DeleteUser(u.ID, admin.ID, false)
	assert.ErrorIs(t, err, ErrUserHasRecords)
	// The error names what is blocking
	assert.Contains(t, err.Error(), "consumptions")
	assert.Contains(t, err.Error(), "audit_entries")

	reloaded, err := FindUserByID(u.ID)
	assert.NoError(t, err)
	assert.False(t, reloaded.IsDeleted)
}

func TestDeleteUser_ForceSoftDelete(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)
	u := seedUser("alice", models.RoleUser)
	t1 := seedUser("treasurer1", models.RoleTreasurer)
	t2 := seedUser("treasurer2", models.RoleTreasurer)

	confirmedDeposit(u, t1, t2, 500)

	err := DeleteUser(u.ID, admin.ID, true)
	assert.NoError(t, err)

	// History survives, the user is tombstoned
	var user models.User
	assert.NoError(t, database.DB.First(&user, "id = ?", u.ID).Error)
	assert.False(t, user.IsActive)
	assert.True(t, user.IsDeleted)

	_, total, err := FindMoneyMoves(MoneyMoveFilter{UserID: &u.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Tombstoned users no longer show up in listings
	users, _, err := FindUsers(false, 0, 100)
	assert.NoError(t, err)
	for _, listed := range users {
		assert.NotEqual(t, u.ID, listed.ID)
	}
}

func TestDeleteUser_LastAdmin(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)

	err := DeleteUser(admin.ID, admin.ID, false)
	assert.ErrorIs(t, err, ErrLastAdmin)
	err = DeleteUser(admin.ID, admin.ID, true)
	assert.ErrorIs(t, err, ErrLastAdmin)
}

func TestFindUsers_ActiveOnly(t *testing.T) {
	setupTestDB()

	seedUser("alice", models.RoleUser)
	seedUser("bob", models.RoleUser)
	seedInactiveUser("carol")

	all, total, err := FindUsers(false, 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	active, total, err := FindUsers(true, 0, 100)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, active, 2)
}

func TestFindUserByID_Cache(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()
	defer func() { database.RedisClient = nil }()

	admin := seedUser("admin", models.RoleAdmin)
	u := seedUser("alice", models.RoleUser)

	found, err := FindUserByID(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", found.DisplayName)
	assert.True(t, mr.Exists(userCacheKey(u.ID)))

	// A second read is served from the cache even if the row changed
	database.DB.Model(u).Update("display_name", "renamed-behind-cache")
	cached, err := FindUserByID(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", cached.DisplayName)

	// Updates through the service invalidate the entry
	name := "alice-updated"
	_, err = UpdateUser(u.ID, UserUpdate{DisplayName: &name}, admin.ID)
	assert.NoError(t, err)
	assert.False(t, mr.Exists(userCacheKey(u.ID)))

	fresh, err := FindUserByID(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice-updated", fresh.DisplayName)

	_, err = FindUserByID(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
