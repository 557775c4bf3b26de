package services

import (
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

// setupTestDB points the global handle at a fresh in-memory SQLite
// database. Redis is disabled unless a test opts in via setupTestRedis.
func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	allModels := []interface{}{
		&models.User{},
		&models.Product{},
		&models.Consumption{},
		&models.MoneyMove{},
		&models.AuditEntry{},
		&models.StockPurchase{},
	}

	db.Migrator().DropTable(allModels...)
	if err := db.AutoMigrate(allModels...); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func seedUser(name string, role models.Role) *models.User {
	u := &models.User{
		DisplayName: name,
		Email:       fmt.Sprintf("%s@example.com", name),
		Role:        role,
		IsActive:    true,
	}
	if err := database.DB.Create(u).Error; err != nil {
		panic(err)
	}
	return u
}

func seedInactiveUser(name string) *models.User {
	u := seedUser(name, models.RoleUser)
	database.DB.Model(u).Update("is_active", false)
	u.IsActive = false
	return u
}

func seedProduct(name string, priceCents int64) *models.Product {
	p := &models.Product{
		Name:       name,
		PriceCents: priceCents,
		IsActive:   true,
	}
	if err := database.DB.Create(p).Error; err != nil {
		panic(err)
	}
	return p
}

// confirmedDeposit seeds a deposit created by creator and confirmed by
// confirmer, going through the real state machine.
func confirmedDeposit(beneficiary, creator, confirmer *models.User, amountCents int64) *models.MoneyMove {
	move, err := CreateMoneyMove(models.MoveTypeDeposit, beneficiary.ID, amountCents, "", creator.ID)
	if err != nil {
		panic(err)
	}
	move, err = ConfirmMoneyMove(move.ID, confirmer.ID)
	if err != nil {
		panic(err)
	}
	return move
}
