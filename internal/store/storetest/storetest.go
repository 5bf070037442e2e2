// Package storetest opens throwaway in-memory databases for tests.
package storetest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecotrack/backend/internal/models"
	"github.com/ecotrack/backend/internal/store"
)

// OpenDB returns a migrated in-memory sqlite database scoped to the test
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A second pooled connection would see a different in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.User{},
		&models.WasteReport{},
		&models.CleanupActivity{},
		&models.ActivityComment{},
		&models.ActivityLike{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// New returns a gorm-backed store over a fresh in-memory database
func New(t *testing.T) store.Store {
	t.Helper()
	return store.NewGorm(OpenDB(t))
}
