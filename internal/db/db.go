package db

import (
	"fmt"  // Error wrapping
	"time" // Pool lifetimes

	"eventwave/internal/config" // Driver selection and DSN

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // Quieter SQL logging
)

// Open connects to the SQL database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN())
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("driver %q has no SQL backend", cfg.DBDriver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // Unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Tune the connection pool
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	return gormDB, nil
}
