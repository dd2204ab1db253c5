package database

import (
	"os"

	"github.com/yeremiapane/helpdesk-app/models"
	"github.com/yeremiapane/helpdesk-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate creates/updates the schema and seeds the default admin account.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Group{},
		&models.User{},
		&models.Ticket{},
		&models.Comment{},
		&models.Attachment{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	return seedAdmin(db)
}

// seedAdmin inserts an initial admin user when the users table is empty,
// so a fresh install can log in at all. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.InfoLogger.Println("No users and no ADMIN_EMAIL/ADMIN_PASSWORD set, skipping admin seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName: "System",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		Status:    "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded default admin user: %s", email)
	return nil
}
