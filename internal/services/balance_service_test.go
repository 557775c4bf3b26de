package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

func TestUserBalance_NoRecords(t *testing.T) {
	setupTestDB()

	u := seedUser("empty", models.RoleUser)

	balance, err := UserBalance(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestUserBalance_UnknownUser(t *testing.T) {
	setupTestDB()

	_, err := UserBalance(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserBalance_DepositConsumePayout(t *testing.T) {
	setupTestDB()

	u := seedUser("drinker", models.RoleUser)
	t1 := seedUser("treasurer1", models.RoleTreasurer)
	t2 := seedUser("treasurer2", models.RoleTreasurer)
	coffee := seedProduct("Coffee", 200)

	confirmedDeposit(u, t1, t2, 2000)

	balance, err := UserBalance(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2000), balance)

	_, err = CreateConsumption(u.ID, coffee.ID, 3, u.ID)
	assert.NoError(t, err)

	balance, err = UserBalance(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1400), balance)

	payout, err := CreateMoneyMove(models.MoveTypePayout, u.ID, 500, "cash back", t1.ID)
	assert.NoError(t, err)
	_, err = ConfirmMoneyMove(payout.ID, t2.ID)
	assert.NoError(t, err)

	balance, err = UserBalance(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(900), balance)
}

func TestUserBalance_PendingAndRejectedIgnored(t *testing.T) {
	setupTestDB()

	u := seedUser("noisy", models.RoleUser)
	t1 := seedUser("treasurer1", models.RoleTreasurer)
	t2 := seedUser("treasurer2", models.RoleTreasurer)

	// Pending deposit
	_, err := CreateMoneyMove(models.MoveTypeDeposit, u.ID, 5000, "", t1.ID)
	assert.NoError(t, err)

	// Rejected payout
	rejected, err := CreateMoneyMove(models.MoveTypePayout, u.ID, 3000, "", t1.ID)
	assert.NoError(t, err)
	_, err = RejectMoneyMove(rejected.ID, t2.ID)
	assert.NoError(t, err)

	balance, err := UserBalance(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// A confirmed deposit in the middle of the noise counts exactly once.
	confirmedDeposit(u, t1, t2, 700)

	balance, err = UserBalance(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(700), balance)
}

func TestBalanceThresholds(t *testing.T) {
	setupTestDB()

	rich := seedUser("rich", models.RoleUser)
	poor := seedUser("poor", models.RoleUser)
	exact := seedUser("exact", models.RoleUser)
	inactive := seedInactiveUser("gone")
	t1 := seedUser("treasurer1", models.RoleTreasurer)
	t2 := seedUser("treasurer2", models.RoleTreasurer)

	confirmedDeposit(rich, t1, t2, 5000)
	confirmedDeposit(exact, t1, t2, 1000)
	_ = poor
	_ = inactive

	below, err := BalancesBelowThreshold(1000)
	assert.NoError(t, err)
	names := balanceNames(below)
	assert.Contains(t, names, "poor")
	assert.NotContains(t, names, "exact") // below is strict
	assert.NotContains(t, names, "rich")
	assert.NotContains(t, names, "gone") // inactive users are skipped

	above, err := BalancesAboveThreshold(1000)
	assert.NoError(t, err)
	names = balanceNames(above)
	assert.Contains(t, names, "exact") // above is inclusive
	assert.Contains(t, names, "rich")
	assert.NotContains(t, names, "poor")
}

func balanceNames(entries []UserBalanceEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.User.DisplayName)
	}
	return names
}
