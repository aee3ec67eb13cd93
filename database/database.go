package database

import (
	"fmt"
	"time"

	"elprimobot/config"
	"elprimobot/logger"
	"elprimobot/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the optional cycle-archive database and migrates its
// schema. Callers must check config.AppConfig.ArchiveEnabled() first.
func Connect() error {
	logger.Log.Info("Connecting to archive database...")

	cfg := config.AppConfig
	port := cfg.DBPort
	if port == "" {
		port = "3306"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, port, cfg.DBName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := DB.AutoMigrate(&models.CycleStats{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database models: %w", err)
	}

	return nil
}

// RecordCycle archives one completed stats cycle. A write failure is
// logged and swallowed; the archive is best-effort.
func RecordCycle(stats models.CycleStats) {
	if DB == nil {
		return
	}
	if err := DB.Create(&stats).Error; err != nil {
		logger.Log.WithError(err).Error("Failed to archive cycle stats")
	}
}
