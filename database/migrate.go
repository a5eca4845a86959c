package database

import (
	"fmt"
	"log"

	"smartmatch_backend/internal/config"
	"smartmatch_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens (once) the GORM connection using the configured DSN.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every persisted model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.FreelancerProfile{},
		&models.ComplianceRecord{},
		&models.WorkPattern{},
		&models.SkillRelationship{},
		&models.SkillEndorsement{},
		&models.MarketRate{},
		&models.MatchingEvent{},
	)

	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	log.Println("AutoMigrate completed")
	return nil
}
