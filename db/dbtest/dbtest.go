// Package dbtest opens throwaway gorm databases for tests.
package dbtest

import (
	"testing"

	"chinook/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite returns an in-memory SQLite database with the catalog tables
// created. The pool is pinned to one connection because every new
// connection to ":memory:" would see an empty database.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(sqlite.Open(":memory:"), "silent")
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(gdb))
	return gdb
}

// Seed inserts each value with gorm's Create.
func Seed(t testing.TB, gdb *gorm.DB, values ...interface{}) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, gdb.Create(v).Error)
	}
}

// NewMock returns a gorm handle speaking the MySQL dialect to sqlmock.
func NewMock(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := db.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), "silent")
	require.NoError(t, err)
	return gdb, mock
}
