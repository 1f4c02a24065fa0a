package models

import (
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	gorm.Model
	Email        string `gorm:"not null;unique"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string
	Role         string `gorm:"not null;default:'user'"` // "user" or "admin"
}

type Event struct {
	gorm.Model
	Title          string `gorm:"not null"`
	Description    string
	Location       string
	EventDate      time.Time `gorm:"not null"`
	Price          float64   `gorm:"not null"`
	Category       string
	Capacity       int `gorm:"not null"`
	AvailableSeats int `gorm:"not null"`
	ImageURL       string
	OrganizerID    *uint
	Status         string `gorm:"not null;default:'draft'"`
}

type Booking struct {
	gorm.Model
	Reference  string  `gorm:"not null;unique"`
	EventID    uint    `gorm:"not null"`
	UserID     uint    `gorm:"not null"`
	NumTickets int     `gorm:"not null"`
	TotalPrice float64 `gorm:"not null"`
	Status     string  `gorm:"not null;default:'confirmed'"` // "confirmed" or "cancelled"

	Event Event `gorm:"foreignKey:EventID"`
}

// Order is the admin-facing purchase record. It overlaps Booking but lives in
// its own table with a wider status set (pending/confirmed/completed/cancelled)
// and no code path reconciles the two.
type Order struct {
	gorm.Model
	ProfileID   uint    `gorm:"not null"`
	EventID     uint    `gorm:"not null"`
	Quantity    int     `gorm:"not null"`
	TotalAmount float64 `gorm:"not null"`
	Status      string  `gorm:"not null;default:'pending'"`

	Profile Profile `gorm:"foreignKey:ProfileID"`
	Event   Event   `gorm:"foreignKey:EventID"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Profile{},
		&Event{},
		&Booking{},
		&Order{},
	)
}
