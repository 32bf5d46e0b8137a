package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB holds the database connection
type DB struct {
	Gorm *gorm.DB

	logger *zap.Logger
}

// InitDB opens the relational store selected by STORAGE_DRIVER: "sqlite"
// for the embedded file database, "postgres" for a networked server.
func InitDB(cfg *Config, logger *zap.Logger) (*DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		if cfg.PostgresConnStr == "" {
			return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
		dialector = postgres.Open(cfg.PostgresConnStr)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.StorageDriver, err)
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Connected to database", zap.String("driver", cfg.StorageDriver))
	return &DB{Gorm: db, logger: logger}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	sqlDB, err := db.Gorm.DB()
	if err != nil {
		db.logger.Error("Failed to get SQL DB from GORM", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		db.logger.Error("Failed to close database connection", zap.Error(err))
		return
	}
	db.logger.Info("Database connection closed")
}
