// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"testing"

	"github.com/CardLedger/CardLedger-Backend/src/config"
	"github.com/CardLedger/CardLedger-Backend/src/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB opens a fresh migrated in-memory SQLite database for one test.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.Connect(config.Database{Driver: config.DriverSQLite})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
