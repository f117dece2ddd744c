package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/model"
)

// RunMigrations creates or updates the tables for every model. Hand-written
// SQL (indexes GORM cannot express) is applied separately by cmd/migrate.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logger.For("database").Infof("Schema migrated (%s)", db.Dialector.Name())
	return nil
}
