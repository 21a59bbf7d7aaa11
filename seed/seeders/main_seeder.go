package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	// 1. Seed the category taxonomy (no dependencies)
	categorySeeder := NewCategorySeeder(s.db)
	if err := categorySeeder.SeedCategories(); err != nil {
		log.Printf("Category seeding failed: %v", err)
		return err
	}

	// 2. Seed the default admin account
	adminSeeder := NewAdminSeeder(s.db)
	if err := adminSeeder.SeedAdmin(); err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedCategoriesOnly seeds only the category taxonomy
func (s *MainSeeder) SeedCategoriesOnly() error {
	categorySeeder := NewCategorySeeder(s.db)
	return categorySeeder.SeedCategories()
}

// SeedAdminOnly seeds only the default admin account
func (s *MainSeeder) SeedAdminOnly() error {
	adminSeeder := NewAdminSeeder(s.db)
	return adminSeeder.SeedAdmin()
}
