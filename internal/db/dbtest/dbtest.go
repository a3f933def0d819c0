// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hospital/internal/db"
)

// New returns a migrated in-memory database that is closed when t ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewSQLite(":memory:", db.GormConfig(zerolog.Nop(), true))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}
