package main

import (
	"log"

	"github.com/tii-its/coffee-fund-app/config"
	"github.com/tii-its/coffee-fund-app/internal/api"
	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	router, err := api.NewRouter(cfg)
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Consumption{},
		&models.MoneyMove{},
		&models.AuditEntry{},
		&models.StockPurchase{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seedAdminUser(cfg); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// seedAdminUser creates the bootstrap admin on an empty directory so the
// first login is possible. Does nothing once any admin exists.
func seedAdminUser(cfg *config.Config) error {
	var count int64
	err := database.DB.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", models.RoleAdmin, false).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.User{
		DisplayName: cfg.SeedAdminName,
		Email:       cfg.SeedAdminEmail,
		Role:        models.RoleAdmin,
		IsActive:    true,
	}

	if cfg.SeedAdminPin != "" {
		hashed, err := services.HashPin(cfg.SeedAdminPin)
		if err != nil {
			return err
		}
		admin.PinHash = hashed
	}

	return database.DB.Create(admin).Error
}
