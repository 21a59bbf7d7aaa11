package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, categories, admin")
		dbPath   = flag.String("db", "", "SQLite path for local seeding (overrides DATABASE_URL)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "categories":
		log.Println("Seeding categories only...")
		if err := mainSeeder.SeedCategoriesOnly(); err != nil {
			log.Fatalf("Failed to seed categories: %v", err)
		}
	case "admin":
		log.Println("Seeding admin account only...")
		if err := mainSeeder.SeedAdminOnly(); err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'categories', or 'admin'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func openDatabase(sqlitePath string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	if sqlitePath != "" {
		log.Printf("Connecting to SQLite database: %s", sqlitePath)
		return gorm.Open(sqlite.Open(sqlitePath), config)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, falling back to local SQLite: talynk.db")
		return gorm.Open(sqlite.Open("talynk.db"), config)
	}

	return gorm.Open(postgres.Open(dsn), config)
}

func showHelp() {
	log.Println(`
Database Seeding Tool for the Talynk Admin Backend

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, categories, admin
  -db string
        SQLite path for local seeding (overrides DATABASE_URL)
  -help
        Show this help message

Examples:
  # Seed everything against DATABASE_URL
  go run seed/main.go

  # Seed only the category taxonomy
  go run seed/main.go -type=categories

  # Seed into a local SQLite file
  go run seed/main.go -db=./talynk.db

Environment Variables:
  DATABASE_URL   - Postgres connection string
  ADMIN_EMAIL    - Seeded admin email (default: admin@talynk.com)
  ADMIN_PASSWORD - Seeded admin password (default: admin123)`)
}
