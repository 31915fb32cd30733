// Package testkit provides fixtures shared by package tests.
package testkit

import (
	"fmt"
	"testing"

	"littlelemon/internal/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpenDB opens a private in-memory SQLite database with the schema migrated.
// Every call gets its own database, so tests can run in parallel.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
