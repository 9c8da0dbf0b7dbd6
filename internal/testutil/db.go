package testutil

import (
	"path/filepath"
	"testing"

	"go-inventory-history/config"
	"go-inventory-history/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated SQLite database in a per-test temp dir, so every
// test gets an isolated store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(SQLiteConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	return db
}

// SQLiteConfig points at a fresh database file under t.TempDir().
func SQLiteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "inventory.db"),
	}
}
