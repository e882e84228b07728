package main

import (
	"eventwave/internal/config" // Custom import path (Config)
	"eventwave/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.DBDriver == config.DriverMemory {
		logrus.Info("memory driver selected, nothing to migrate")
		return
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gormDB); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
}
