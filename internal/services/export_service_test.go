package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tii-its/coffee-fund-app/internal/models"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	assert.NoError(t, err)
	return records
}

func TestExportConsumptionsCSV(t *testing.T) {
	setupTestDB()

	u := seedUser("alice", models.RoleUser)
	coffee := seedProduct("coffee", 200)

	_, err := CreateConsumption(u.ID, coffee.ID, 3, u.ID)
	assert.NoError(t, err)

	data, err := ExportConsumptionsCSV()
	assert.NoError(t, err)

	records := parseCSV(t, data)
	if assert.Len(t, records, 2) {
		assert.Equal(t, []string{"Date", "User", "Product", "Quantity", "Unit Price", "Total Amount", "Created By"}, records[0])
		row := records[1]
		assert.Equal(t, "alice", row[1])
		assert.Equal(t, "coffee", row[2])
		assert.Equal(t, "3", row[3])
		assert.Equal(t, "2.00", row[4])
		assert.Equal(t, "6.00", row[5])
		assert.Equal(t, "alice", row[6])
	}
}

func TestExportMoneyMovesCSV(t *testing.T) {
	setupTestDB()

	u := seedUser("alice", models.RoleUser)
	t1 := seedUser("treasurer1", models.RoleTreasurer)
	t2 := seedUser("treasurer2", models.RoleTreasurer)

	confirmedDeposit(u, t1, t2, 2000)
	_, err := CreateMoneyMove(models.MoveTypePayout, u.ID, 500, "snack run", t1.ID)
	assert.NoError(t, err)

	data, err := ExportMoneyMovesCSV()
	assert.NoError(t, err)

	records := parseCSV(t, data)
	if assert.Len(t, records, 3) {
		assert.Equal(t, "Created Date", records[0][0])

		// Newest first: the pending payout precedes the deposit
		pending := records[1]
		assert.Equal(t, "payout", pending[1])
		assert.Equal(t, "alice", pending[2])
		assert.Equal(t, "5.00", pending[3])
		assert.Equal(t, "pending", pending[4])
		assert.Equal(t, "snack run", pending[5])
		assert.Equal(t, "treasurer1", pending[6])
		assert.Empty(t, pending[7])
		assert.Empty(t, pending[8])

		deposit := records[2]
		assert.Equal(t, "deposit", deposit[1])
		assert.Equal(t, "20.00", deposit[3])
		assert.Equal(t, "confirmed", deposit[4])
		assert.Equal(t, "treasurer2", deposit[8])
		assert.NotEmpty(t, deposit[7])
	}
}

func TestExportBalancesCSV(t *testing.T) {
	setupTestDB()

	u := seedUser("alice", models.RoleUser)
	t1 := seedUser("treasurer1", models.RoleTreasurer)
	t2 := seedUser("treasurer2", models.RoleTreasurer)
	seedInactiveUser("ghost")

	confirmedDeposit(u, t1, t2, 1250)

	data, err := ExportBalancesCSV()
	assert.NoError(t, err)

	records := parseCSV(t, data)
	// Header plus the three active users; the inactive one is skipped
	if assert.Len(t, records, 4) {
		assert.Equal(t, []string{"User", "Email", "Role", "Balance"}, records[0])
		assert.Equal(t, "alice", records[1][0])
		assert.Equal(t, "alice@example.com", records[1][1])
		assert.Equal(t, "user", records[1][2])
		assert.Equal(t, "12.50", records[1][3])
	}
	assert.NotContains(t, string(data), "ghost")
}

func TestExportAuditCSV(t *testing.T) {
	setupTestDB()

	admin := seedUser("admin", models.RoleAdmin)

	created, err := CreateProduct("espresso", 180, admin.ID)
	assert.NoError(t, err)

	data, err := ExportAuditCSV()
	assert.NoError(t, err)

	records := parseCSV(t, data)
	if assert.Len(t, records, 2) {
		assert.Equal(t, []string{"Time", "Actor", "Action", "Entity", "Entity ID", "Metadata"}, records[0])
		row := records[1]
		assert.Equal(t, "admin", row[1])
		assert.Equal(t, models.ActionCreate, row[2])
		assert.Equal(t, models.EntityProduct, row[3])
		assert.Equal(t, created.ID.String(), row[4])
		assert.Contains(t, row[5], "espresso")
	}
}

func TestExportStockPurchasesCSV(t *testing.T) {
	setupTestDB()

	treasurer := seedUser("treasurer", models.RoleTreasurer)

	_, err := CreateStockPurchase(StockPurchaseInput{
		ItemName:       "coffee beans",
		Supplier:       "roastery",
		Quantity:       4,
		UnitPriceCents: 1250,
		ReceiptNumber:  "R-100",
	}, treasurer.ID)
	assert.NoError(t, err)

	data, err := ExportStockPurchasesCSV()
	assert.NoError(t, err)

	records := parseCSV(t, data)
	if assert.Len(t, records, 2) {
		row := records[1]
		assert.Equal(t, "coffee beans", row[1])
		assert.Equal(t, "roastery", row[2])
		assert.Equal(t, "4", row[3])
		assert.Equal(t, "12.50", row[4])
		assert.Equal(t, "50.00", row[5])
		assert.Equal(t, "R-100", row[6])
		assert.Equal(t, "false", row[7])
		assert.Equal(t, "treasurer", row[8])
	}
}
