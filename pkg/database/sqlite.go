package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a SQLite database through the pure-Go driver. SQLite
// allows one writer, so the pool is limited to a single connection.
func NewSQLiteDB(dsn, environment string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), GormConfig(environment))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// Open connects to the database selected by DB_DRIVER.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := NewSQLiteDB(cfg.Database.SQLitePath, cfg.App.Environment)
		if err != nil {
			return nil, err
		}
		logger.GetLogger().Info("Database connected", zap.String("driver", "sqlite"), zap.String("path", cfg.Database.SQLitePath))
		return db, nil
	default:
		return NewPostgresDB(cfg)
	}
}
