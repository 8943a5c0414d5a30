package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/config"
	"github.com/bmarinov/gym_go_server/internal/model"
)

// Open connects to the configured database and runs migrations.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("failed to create database dir: %w", mkErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration for all entities and installs the
// notification dedup index.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Member{},
		&model.Membership{},
		&model.MemberMembership{},
		&model.TrainingLog{},
		&model.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// At most one live notification per member membership. Partial indexes
	// are a sqlite feature; on mysql the engine's pre-insert check is the
	// only guard.
	if db.Dialector.Name() == "sqlite" {
		err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_notifications_one_per_membership
			ON notifications(member_membership_id) WHERE deleted_at IS NULL`).Error
		if err != nil {
			return fmt.Errorf("failed to create notification dedup index: %w", err)
		}
	}

	return nil
}
