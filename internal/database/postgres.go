package database

import (
	"fmt"
	"log"

	"memory-backend/config"
	"memory-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection and runs migrations.
func ConnectDB(cfg *config.Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	DB = db
	log.Printf("✅ Connected to Postgres (%s/%s)", cfg.DBHost, cfg.DBName)
}

// Migrate creates/updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Album{},
		&models.PendingUpload{},
		&models.Media{},
		&models.Notification{},
	)
}
