package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Catalog
		&types.TechnologyCategory{},
		&types.Technology{},
		&types.TechnologyTag{},
		&types.TechnologyTagLink{},

		// Projects + snapshots
		&types.Project{},
		&types.Recommendation{},
	)
}

// EnsureIndexes adds indexes GORM tags cannot express.
func EnsureIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != DriverPostgres {
		return nil
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_project_user_updated
		ON project (user_id, updated_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_project_user_updated: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_technology_active_category
		ON technology (category_id)
		WHERE is_active;
	`).Error; err != nil {
		return fmt.Errorf("create idx_technology_active_category: %w", err)
	}
	return nil
}

func Migrate(db *gorm.DB, log *logger.Logger) error {
	log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(db); err != nil {
		log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureIndexes(db); err != nil {
		log.Error("Index migration failed", "error", err)
		return err
	}
	return nil
}
