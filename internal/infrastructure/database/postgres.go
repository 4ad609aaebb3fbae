package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glowdesk/glowdesk-api/internal/config"
	"github.com/glowdesk/glowdesk-api/internal/domain/entity"
	"github.com/glowdesk/glowdesk-api/internal/domain/enum"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		// Directory entities
		&entity.Customer{},
		&entity.Staff{},
		&entity.CatalogItem{},

		// Scheduling entities
		&entity.Appointment{},

		// Billing entities
		&entity.Bill{},
		&entity.BillItem{},
		&entity.BillTender{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with an admin user and a starter catalog
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existing entity.User
		if err := db.Where("email = ?", adminEmail).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Salon Admin"
				}
				firstName := adminName
				lastName := ""
				for i, c := range adminName {
					if c == ' ' {
						firstName = adminName[:i]
						lastName = adminName[i+1:]
						break
					}
				}
				admin := entity.User{
					ID:        uuid.New(),
					FirstName: firstName,
					LastName:  lastName,
					Email:     adminEmail,
					Password:  string(hashedPassword),
					Role:      "admin",
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	// Seed a starter catalog so a fresh install has something billable
	var count int64
	if err := db.Model(&entity.CatalogItem{}).Count(&count).Error; err == nil && count == 0 {
		starter := []entity.CatalogItem{
			{Code: "SRV-CUT-01", Name: "Haircut & Style", Kind: enum.ItemKindService, UnitPrice: decimal.NewFromInt(45), DurationMinutes: 45},
			{Code: "SRV-MAN-01", Name: "Classic Manicure", Kind: enum.ItemKindService, UnitPrice: decimal.NewFromInt(35), DurationMinutes: 30},
			{Code: "SRV-FAC-01", Name: "Hydrating Facial", Kind: enum.ItemKindService, UnitPrice: decimal.NewFromInt(100), DurationMinutes: 60},
			{Code: "PRD-OIL-01", Name: "Argan Hair Oil 50ml", Kind: enum.ItemKindProduct, UnitPrice: decimal.RequireFromString("18.50")},
			{Code: "PKG-SPA-01", Name: "Spa Day Package", Kind: enum.ItemKindPackage, UnitPrice: decimal.NewFromInt(220), DurationMinutes: 180},
		}
		for i := range starter {
			if err := db.Create(&starter[i]).Error; err != nil {
				log.Printf("Warning: failed to seed catalog item %s: %v", starter[i].Code, err)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
