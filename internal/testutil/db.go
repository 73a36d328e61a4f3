// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"saas-manager-be/internal/repository/unitofwork"
	"saas-manager-be/pkg/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh migrated SQLite database private to the test.
// A single connection keeps every query, transactional or not, on the same
// in-memory database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.Config(logger.Default.LogMode(logger.Silent)))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// NewUnitOfWork returns a unit of work on a fresh test database
func NewUnitOfWork(t *testing.T) (unitofwork.UnitOfWork, *gorm.DB) {
	t.Helper()
	db := SetupTestDB(t)
	return unitofwork.NewUnitOfWork(db), db
}
