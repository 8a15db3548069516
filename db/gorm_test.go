package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"chinook/config"
	"chinook/logger"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMySQLDSN(t *testing.T) {
	cfg := &config.Config{
		DBUser:     "chinook",
		DBPassword: "s3cret",
		DBHost:     "db.internal",
		DBPort:     "3307",
		DBName:     "catalog",
	}

	dsn := MySQLDSN(cfg)
	assert.Contains(t, dsn, "charset=utf8mb4")

	parsed, err := gomysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "chinook", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "catalog", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestDialectorNames(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: config.DriverSQLite, DBPath: "chinook.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(&config.Config{DBDriver: config.DriverMySQL, DBHost: "localhost", DBPort: "3306"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}

func TestParseGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, parseGormLevel("silent"))
	assert.Equal(t, gormlogger.Error, parseGormLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, parseGormLevel("info"))
	assert.Equal(t, gormlogger.Warn, parseGormLevel("verbose"))
}

func TestOpenMigratePingClose(t *testing.T) {
	gdb, err := Open(sqlite.Open(":memory:"), "silent")
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(gdb))
	for _, m := range Models {
		assert.True(t, gdb.Migrator().HasTable(m))
	}

	require.NoError(t, Ping(context.Background(), gdb))
	require.NoError(t, Close(gdb))
	assert.Error(t, Ping(context.Background(), gdb))
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestGormLoggerLevels(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM `genres`", 0 }
	ctx := context.Background()

	t.Run("failed query logs at error", func(t *testing.T) {
		logs := observeLogs(t)
		NewGormLogger("error").Trace(ctx, time.Now(), query, errors.New("no such table: genres"))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "SELECT * FROM `genres`", entry.ContextMap()["sql"])
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		logs := observeLogs(t)
		NewGormLogger("info").Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		logs := observeLogs(t)
		NewGormLogger("warn").Trace(ctx, time.Now().Add(-time.Second), query, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("fast query is quiet below info", func(t *testing.T) {
		logs := observeLogs(t)
		NewGormLogger("warn").Trace(ctx, time.Now(), query, nil)
		assert.Zero(t, logs.Len())
	})

	t.Run("silent drops errors", func(t *testing.T) {
		logs := observeLogs(t)
		l := NewGormLogger("info").LogMode(gormlogger.Silent)
		l.Trace(ctx, time.Now(), query, errors.New("boom"))
		l.Error(ctx, "boom %d", 1)
		assert.Zero(t, logs.Len())
	})

	t.Run("messages keep their level", func(t *testing.T) {
		logs := observeLogs(t)
		l := NewGormLogger("info")
		l.Info(ctx, "opened %s", "chinook.db")
		l.Warn(ctx, "retrying %d", 2)
		l.Error(ctx, "failed %s", "migration")

		require.Equal(t, 3, logs.Len())
		assert.Equal(t, "opened chinook.db", logs.All()[0].Message)
		assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
		assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[2].Level)
	})
}

func TestFailedStatementIsLoggedAsError(t *testing.T) {
	gdb, err := Open(sqlite.Open(":memory:"), "warn")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	logs := observeLogs(t)
	require.Error(t, gdb.Exec("SELECT * FROM missing_table").Error)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].ContextMap()["sql"], "missing_table")
}
