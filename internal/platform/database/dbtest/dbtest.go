// Package dbtest opens throwaway sqlite databases for package tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/YeswanthC7/keepkind/internal/config"
	"github.com/YeswanthC7/keepkind/internal/platform/database"
)

// Open returns a migrated sqlite database living in t.TempDir().
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "keepkind.db"),
		},
	}
	db, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
