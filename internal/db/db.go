package db

import (
	"hydrolog/internal/domain" // Importing domain models

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to the database with the given DSN
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// Migrate performs the idempotent schema initialization for both stores.
// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&domain.User{}, &domain.Measurement{})
}
