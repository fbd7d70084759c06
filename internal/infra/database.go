package infra

import (
	"fmt"
	"time"

	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the Postgres connection, tunes the pool and runs
// migrations for every model.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Family{},
		&model.SubFamily{},
		&model.Item{},
		&model.Package{},
		&model.Operation{},
		&model.Action{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Msg("database connected and migrated")
	return db, nil
}
