package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the postgres connection and assigns the global handle.
// The database may still be starting when the app boots, so connection
// attempts are retried before giving up.
func Connect(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		time.Sleep(retryInterval)
	}
	if err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}
