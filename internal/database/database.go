package database

import (
	"fmt"
	"strings"

	"artisanmart/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database named by driver and dsn. A postgres:// or
// postgresql:// DSN selects the postgres driver even when driver is empty.
func Open(driver, dsn string) (*gorm.DB, error) {
	if driver == "" {
		driver = DriverFromDSN(dsn)
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// DriverFromDSN guesses the driver from the DSN's scheme.
func DriverFromDSN(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// MigrateCredentials creates the local session store table.
func MigrateCredentials(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Credential{}); err != nil {
		return fmt.Errorf("failed to migrate credential store: %w", err)
	}
	return nil
}

// MigrateSandbox creates the tables behind the sandbox API.
func MigrateSandbox(db *gorm.DB) error {
	err := db.AutoMigrate(&models.User{}, &models.Brand{}, &models.Product{}, &models.VerificationToken{})
	if err != nil {
		return fmt.Errorf("failed to migrate sandbox database: %w", err)
	}
	return nil
}
