package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-hub-api/internal/domain"
)

func migrationModels() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Project{},
		&domain.ProjectMember{},
		&domain.Task{},
		&domain.Comment{},
		&domain.File{},
		&domain.Activity{},
		&domain.Notification{},
	}
}

// AutoMigrate runs schema migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(migrationModels()...)
}

// SafeAutoMigrate migrates each model individually, logging which tables
// already exist so a partial failure is attributable to a single model.
func SafeAutoMigrate(db *gorm.DB, log *zap.Logger) error {
	for _, model := range migrationModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse model: %w", err)
		}
		table := stmt.Schema.Table

		if db.Migrator().HasTable(model) {
			log.Debug("table exists, migrating in place", zap.String("table", table))
		} else {
			log.Info("creating table", zap.String("table", table))
		}

		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
	}
	return nil
}

// SafeAutoMigrateWithRetry retries migration with linear backoff.
// Transient startup races with the database are the common failure here.
func SafeAutoMigrateWithRetry(db *gorm.DB, log *zap.Logger, maxAttempts int) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = SafeAutoMigrate(db, log); err == nil {
			return nil
		}
		log.Warn("migration attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err))
		if attempt < maxAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}
	return fmt.Errorf("migration failed after %d attempts: %w", maxAttempts, err)
}
