package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the shared connection pool. Every service receives this
// handle (or a transaction derived from it) explicitly; there is no package
// level database.
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}
