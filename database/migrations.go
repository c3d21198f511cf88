package database

import (
	"log"

	"gorm.io/gorm"

	"taskhive/taskhive/models"
)

// RunMigrations brings the schema up to date for all persisted models.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Event{},
	)
	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
