package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"glucolog/internal/config"
	"glucolog/internal/domain"
	"glucolog/internal/logger"
)

// NewPostgresDB opens the database connection and migrates the schema
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.InsulinType{},
		&domain.Reading{},
		&domain.Dose{},
		&domain.Meal{},
		&domain.CorrectionBand{},
		&domain.ScheduleEntry{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
