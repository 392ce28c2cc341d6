// Package dbtest provides a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"foodgram_backend/internal/platform/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens a fresh in-memory database with foreign keys enforced and all tables migrated.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(db.OpenSQLite("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory sqlite")

	// Every connection to :memory: is a separate database.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb), "failed to migrate schema")
	return gdb
}
