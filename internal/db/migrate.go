package db

import (
	"eventwave/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table in dependency order
var Models = []any{
	&domain.User{},
	&domain.Event{},
	&domain.Registration{},
	&domain.Review{},
	&domain.WishlistEntry{},
}

// Migrate performs automatic migration for the database schema
func Migrate(gormDB *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes,
	// including the (user_id, event_id) unique indexes the registration engine relies on
	if err := gormDB.AutoMigrate(Models...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
