package booking

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/majorleaf/eventhub-go/internal/config"
	"github.com/majorleaf/eventhub-go/internal/middleware"
	"github.com/majorleaf/eventhub-go/internal/models"
	"github.com/majorleaf/eventhub-go/internal/redis"
	"gorm.io/gorm"
)

// redirectDelay is how long clients wait on the confirmation screen before
// navigating to the bookings view.
const redirectDelay = 2 * time.Second

type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	authed := r.Group("/bookings")
	authed.Use(middleware.RequireUser(s.config))
	{
		authed.POST("", s.CreateBooking)
		authed.GET("", s.GetUserBookings)
		authed.PUT("/:id/cancel", s.CancelBooking)
	}
}

func (s *Service) CreateBooking(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req struct {
		EventID    uint `json:"eventId" binding:"required"`
		NumTickets int  `json:"numTickets" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var event models.Event
	result := s.db.First(&event, req.EventID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":    "Event not found",
				"redirect": "/events",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch event, please try again",
		})
		return
	}

	// Validation happens against the seat count as read; no write is made on
	// rejection. In guarded mode the upper bound is left to the conditional
	// decrement, which answers 409 when the seats are gone.
	if req.NumTickets < 1 || (!s.config.SeatDecrementEnabled && req.NumTickets > event.AvailableSeats) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ticket count must be between 1 and the number of available seats",
		})
		return
	}

	booking := models.Booking{
		Reference:  uuid.NewString(),
		EventID:    event.ID,
		UserID:     userID,
		NumTickets: req.NumTickets,
		TotalPrice: event.Price * float64(req.NumTickets),
		Status:     "confirmed",
	}

	if s.config.SeatDecrementEnabled {
		if !s.createWithSeatDecrement(c, &booking) {
			return
		}
	} else {
		// Original behavior: the booking row is written but the event's
		// available_seats is left untouched, so a concurrent booking reading
		// the same count will also succeed.
		if err := s.db.Create(&booking).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create booking, please try again",
			})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":         booking,
		"message":         "Booking confirmed",
		"redirectTo":      "/bookings",
		"redirectAfterMs": redirectDelay.Milliseconds(),
	})
}

// createWithSeatDecrement wraps the booking insert and a conditional seat
// decrement in one transaction, serialized per event by a redis lock. It
// writes the error response itself and reports whether the booking was made.
func (s *Service) createWithSeatDecrement(c *gin.Context, booking *models.Booking) bool {
	if s.redisClient != nil {
		if err := s.redisClient.LockEvent(context.Background(), booking.EventID, booking.UserID); err != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Event is currently being processed by another user",
			})
			return false
		}
		defer s.redisClient.UnlockEvent(context.Background(), booking.EventID)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&models.Event{}).
		Where("id = ? AND available_seats >= ?", booking.EventID, booking.NumTickets).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", booking.NumTickets))
	if result.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create booking, please try again",
		})
		return false
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusConflict, gin.H{
			"error": "Not enough seats available",
		})
		return false
	}

	if err := tx.Create(booking).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create booking, please try again",
		})
		return false
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create booking, please try again",
		})
		return false
	}

	return true
}

// GetUserBookings returns the signed-in user's bookings with their events,
// newest first, already partitioned into upcoming and past/cancelled.
func (s *Service) GetUserBookings(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var bookings []models.Booking
	result := s.db.Preload("Event").Where("user_id = ?", userID).Order("created_at desc").Find(&bookings)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch bookings, please try again",
		})
		return
	}

	upcoming, past := Partition(bookings, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"upcoming": upcoming,
		"past":     past,
		"count":    len(bookings),
	})
}

func (s *Service) CancelBooking(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	bookingIDStr := c.Param("id")
	bookingID, err := strconv.ParseUint(bookingIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return
	}

	var booking models.Booking
	result := s.db.First(&booking, "id = ? AND user_id = ?", uint(bookingID), userID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch booking, please try again",
		})
		return
	}

	if booking.Status == "cancelled" {
		c.JSON(http.StatusOK, gin.H{
			"message": "Booking already cancelled",
		})
		return
	}

	if !s.config.SeatDecrementEnabled {
		// Only the status flips; no seat restoration, no other rows touched.
		if err := s.db.Model(&booking).Update("status", "cancelled").Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to cancel booking, please try again",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Booking cancelled successfully",
		})
		return
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&booking).Update("status", "cancelled").Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to cancel booking, please try again",
		})
		return
	}

	// Give the seats back, capped at capacity.
	if err := tx.Model(&models.Event{}).
		Where("id = ?", booking.EventID).
		UpdateColumn("available_seats", gorm.Expr(
			"CASE WHEN available_seats + ? > capacity THEN capacity ELSE available_seats + ? END",
			booking.NumTickets, booking.NumTickets)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to cancel booking, please try again",
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to cancel booking, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled successfully",
	})
}
