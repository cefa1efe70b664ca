// Package db opens and migrates the symbol store. The default backend is an
// embedded SQLite file; setting DATABASE_DSN switches to Postgres for
// server deployments.
package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yfsymbols/internal/domain/entity"
)

// DefaultPath is the store location when SYMBOLS_DB_PATH is unset.
const DefaultPath = "symbols.db"

// Path returns the configured store file location.
func Path() string {
	if p := os.Getenv("SYMBOLS_DB_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Open connects to the store at the given file path (or to Postgres when
// DATABASE_DSN is set, in which case path is ignored) and migrates the
// schema.
func Open(path string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(path)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := gdb.AutoMigrate(&entity.Symbol{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return gdb, nil
}
