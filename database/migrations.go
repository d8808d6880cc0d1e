package database

import (
	"log"

	"github.com/ibrahimbiplob75/taskhub/models"

	"gorm.io/gorm"
)

// RunMigrations keeps the schema in sync with the model definitions.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Meeting{},
		&models.Task{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
