package database

import (
	"fmt"
	"log"
	"time"

	"github.com/majorleaf/eventhub-go/internal/config"
	"github.com/majorleaf/eventhub-go/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return db, nil
}

func SeedData(db *gorm.DB) error {
	// Check if data already exists
	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count > 0 {
		log.Println("Data already seeded, skipping...")
		return nil
	}

	// Create profiles (one admin, two users)
	profiles := []struct {
		email    string
		password string
		name     string
		role     string
	}{
		{"admin@eventhub.local", "admin123", "Site Admin", "admin"},
		{"alice@example.com", "password1", "Alice Nguyen", "user"},
		{"bob@example.com", "password2", "Bob Carter", "user"},
	}

	for _, p := range profiles {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		profile := models.Profile{
			Email:        p.email,
			PasswordHash: string(hash),
			FullName:     p.name,
			Role:         p.role,
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
	}

	// Create events across categories, including a free one
	events := []models.Event{
		{Title: "Live Jazz Night", Description: "An evening of improvised jazz", Location: "Music Hall, Downtown", EventDate: parseDate("2026-10-15T20:00:00Z"), Price: 25.00, Category: "Music", Capacity: 200, AvailableSeats: 200, Status: "published"},
		{Title: "Go Meetup", Description: "Monthly Go developers meetup", Location: "Tech Hub, 3rd Floor", EventDate: parseDate("2026-09-20T18:30:00Z"), Price: 0, Category: "Tech", Capacity: 80, AvailableSeats: 80, Status: "published"},
		{Title: "City Marathon", Description: "Annual 42k through the old town", Location: "Riverside Park", EventDate: parseDate("2026-11-02T07:00:00Z"), Price: 40.00, Category: "Sports", Capacity: 5000, AvailableSeats: 5000, Status: "published"},
		{Title: "Modern Art Expo", Description: "Contemporary works from local artists", Location: "Gallery One", EventDate: parseDate("2026-09-28T10:00:00Z"), Price: 12.50, Category: "Art", Capacity: 300, AvailableSeats: 300, Status: "draft"},
	}

	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
	}

	// Create sample orders for the admin console
	orders := []models.Order{
		{ProfileID: 2, EventID: 1, Quantity: 2, TotalAmount: 50.00, Status: "confirmed"},
		{ProfileID: 3, EventID: 3, Quantity: 1, TotalAmount: 40.00, Status: "pending"},
	}

	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
	}

	log.Println("Sample data seeded successfully")
	return nil
}

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse(time.RFC3339, dateStr)
	return t
}
