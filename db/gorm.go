package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"chinook/config"
	"chinook/logger"
	"chinook/model"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table the API reads or writes, parents first.
var Models = []interface{}{
	&model.Genre{},
	&model.Artist{},
	&model.Album{},
	&model.Playlist{},
	&model.Track{},
	&model.PlaylistTrack{},
}

// MySQLDSN builds the MySQL connection string for cfg.
func MySQLDSN(cfg *config.Config) string {
	dsn := gomysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	dsn.DBName = cfg.DBName
	dsn.ParseTime = true
	dsn.Loc = time.Local
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}

// Dialector picks the gorm dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(MySQLDSN(cfg)), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// Connect opens the process-wide database handle. The caller owns it and
// must release it with Close.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := Open(dialector, cfg.DBLogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("Connected to the database",
		logger.String("driver", cfg.DBDriver))
	return gdb, nil
}

// Open wraps gorm.Open with the zap-backed gorm logger.
func Open(dialector gorm.Dialector, logLevel string) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(logLevel),
		// Chinook ships its own constraints.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
}

// Close releases the connection pool behind gdb.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database answers.
func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate creates missing catalog tables. It only adds; it never alters
// or drops existing columns.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logger.Info("Models migrated successfully with GORM.")
	return nil
}

// gormLogger sends gorm's log output through the zap facade at matching
// levels. SQL traces go to debug so LOG_LEVEL still gates them.
type gormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger returns a gorm logger at the named level
// (silent, error, warn, info). Unknown names fall back to warn.
func NewGormLogger(level string) gormlogger.Interface {
	return &gormLogger{level: parseGormLevel(level), slowThreshold: 200 * time.Millisecond}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.Info(fmt.Sprintf(msg, args...), logger.String("component", "gorm"))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.Warn(fmt.Sprintf(msg, args...), logger.String("component", "gorm"))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.Error(fmt.Sprintf(msg, args...), logger.String("component", "gorm"))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logger.Error("Query failed",
			logger.String("component", "gorm"),
			logger.String("sql", sql),
			logger.Int64("rows", rows),
			logger.Duration("elapsed", elapsed),
			logger.ErrorField(err))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Warn("Slow query",
			logger.String("component", "gorm"),
			logger.String("sql", sql),
			logger.Int64("rows", rows),
			logger.Duration("elapsed", elapsed),
			logger.Duration("threshold", l.slowThreshold))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Debug("Query",
			logger.String("component", "gorm"),
			logger.String("sql", sql),
			logger.Int64("rows", rows),
			logger.Duration("elapsed", elapsed))
	}
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
