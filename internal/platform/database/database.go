package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"netsecurepro/internal/domain/model"
	"netsecurepro/internal/platform/config"
)

var DB *gorm.DB

// Connect opens the database named by DATABASE_URL and creates any absent
// tables. A postgres URL or DSN selects the postgres driver; anything else is
// treated as a sqlite file path. There is no migration system.
func Connect() error {
	dsn := config.AppConfig.DatabaseURL

	var dialector gorm.Dialector
	if isPostgres(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(sqlitePath(dsn))
	}

	gormLogLevel := logger.Warn
	if config.AppConfig.Debug {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error accessing connection pool: %w", err)
	}
	if strings.Contains(dsn, ":memory:") {
		// Every sqlite connection gets its own in-memory database; keep a
		// single one so all requests see the same tables.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	slog.Info("database connected", "dsn", dsn)
	return nil
}

// Migrate creates the tables for all persisted entities if they do not exist.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.SecurityAlert{},
		&model.SecurityLog{},
	); err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}
	return nil
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.Close()
		slog.Info("database connection closed")
	}
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// sqlitePath accepts both a bare file path and a sqlite:/// URL.
func sqlitePath(dsn string) string {
	for _, prefix := range []string{"sqlite:///", "sqlite://"} {
		if strings.HasPrefix(dsn, prefix) {
			return strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
