package seeders

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

// AdminSeeder handles seeding the default admin account
type AdminSeeder struct {
	db *gorm.DB
}

// NewAdminSeeder creates a new admin seeder
func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// SeedAdmin creates a default admin user if none exists
func (s *AdminSeeder) SeedAdmin() error {
	var existingAdmin model.User
	if err := s.db.Where("role = ?", shared.RoleAdmin).First(&existingAdmin).Error; err == nil {
		log.Println("Admin user already exists, skipping admin seeding")
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@talynk.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	id, _ := uuid.NewV7()
	now := time.Now()

	admin := model.User{
		ID:        id.String(),
		Email:     email,
		Username:  "admin",
		Password:  string(hashedPassword),
		Role:      shared.RoleAdmin,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return err
	}

	log.Printf("Created admin user: %s", admin.Email)
	return nil
}
