package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/majorleaf/eventhub-go/internal/config"
	"github.com/majorleaf/eventhub-go/internal/middleware"
	"github.com/majorleaf/eventhub-go/internal/models"
	"gorm.io/gorm"
)

var orderStatuses = map[string]bool{
	"pending":   true,
	"confirmed": true,
	"completed": true,
	"cancelled": true,
}

type Service struct {
	db     *gorm.DB
	config *config.Config
}

func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, config: cfg}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin(s.config))
	{
		admin.GET("/events", s.ListEvents)
		admin.POST("/events", s.CreateEvent)
		admin.PUT("/events/:id", s.UpdateEvent)
		admin.DELETE("/events/:id", s.DeleteEvent)

		admin.GET("/users", s.ListUsers)
		admin.PUT("/users/:id/role", s.ToggleRole)

		admin.GET("/orders", s.ListOrders)
		admin.PUT("/orders/:id/status", s.UpdateOrderStatus)

		admin.GET("/overview", s.Overview)
	}
}

// ListEvents returns every event regardless of date or status.
func (s *Service) ListEvents(c *gin.Context) {
	var events []models.Event
	if err := s.db.Order("event_date asc").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch events, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

type eventRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	EventDate      time.Time `json:"eventDate" binding:"required"`
	Price          float64   `json:"price"`
	Category       string    `json:"category"`
	Capacity       int       `json:"capacity"`
	AvailableSeats int       `json:"availableSeats"`
	ImageURL       string    `json:"imageUrl"`
	OrganizerID    *uint     `json:"organizerId"`
	Status         string    `json:"status"`
}

func (s *Service) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid event data",
			"details": err.Error(),
		})
		return
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}

	event := models.Event{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EventDate:      req.EventDate,
		Price:          req.Price,
		Category:       req.Category,
		Capacity:       req.Capacity,
		AvailableSeats: req.AvailableSeats,
		ImageURL:       req.ImageURL,
		OrganizerID:    req.OrganizerID,
		Status:         status,
	}

	if err := s.db.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create event, please try again",
		})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEvent replaces all editable fields. The status field has no
// transition rules; any value can follow any other.
func (s *Service) UpdateEvent(c *gin.Context) {
	eventID, ok := parseID(c)
	if !ok {
		return
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch event, please try again",
		})
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid event data",
			"details": err.Error(),
		})
		return
	}

	updates := map[string]interface{}{
		"title":           req.Title,
		"description":     req.Description,
		"location":        req.Location,
		"event_date":      req.EventDate,
		"price":           req.Price,
		"category":        req.Category,
		"capacity":        req.Capacity,
		"available_seats": req.AvailableSeats,
		"image_url":       req.ImageURL,
		"organizer_id":    req.OrganizerID,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&event).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update event, please try again",
		})
		return
	}

	if err := s.db.First(&event, event.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch event, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent is a hard delete. Bookings and orders pointing at the event are
// left in place, matching the original console.
func (s *Service) DeleteEvent(c *gin.Context) {
	eventID, ok := parseID(c)
	if !ok {
		return
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Event not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch event, please try again",
		})
		return
	}

	if err := s.db.Unscoped().Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete event, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}

func (s *Service) ListUsers(c *gin.Context) {
	var profiles []models.Profile
	if err := s.db.Order("created_at asc").Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch users, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": profiles,
		"count": len(profiles),
	})
}

// ToggleRole flips a profile between user and admin. There is no guard
// against an admin demoting themselves and no audit trail.
func (s *Service) ToggleRole(c *gin.Context) {
	profileID, ok := parseID(c)
	if !ok {
		return
	}

	var profile models.Profile
	if err := s.db.First(&profile, profileID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch user, please try again",
		})
		return
	}

	newRole := "admin"
	if profile.Role == "admin" {
		newRole = "user"
	}

	if err := s.db.Model(&profile).Update("role", newRole).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update role, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   profile.ID,
		"role": newRole,
	})
}

// ListOrders returns orders joined with the buyer's email and the event title
// for display, newest first, with an optional status filter.
func (s *Service) ListOrders(c *gin.Context) {
	query := s.db.Preload("Profile").Preload("Event").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders, please try again",
		})
		return
	}

	type orderRow struct {
		ID           uint      `json:"id"`
		ProfileEmail string    `json:"profileEmail"`
		EventTitle   string    `json:"eventTitle"`
		Quantity     int       `json:"quantity"`
		TotalAmount  float64   `json:"totalAmount"`
		Status       string    `json:"status"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			ID:           o.ID,
			ProfileEmail: o.Profile.Email,
			EventTitle:   o.Event.Title,
			Quantity:     o.Quantity,
			TotalAmount:  o.TotalAmount,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": rows,
		"count":  len(rows),
	})
}

// UpdateOrderStatus sets an order to any of the four statuses. There is no
// state machine; transitions out of completed or cancelled are accepted.
func (s *Service) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if !orderStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Status must be one of pending, confirmed, completed, cancelled",
		})
		return
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch order, please try again",
		})
		return
	}

	if err := s.db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update order, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     order.ID,
		"status": req.Status,
	})
}

// Overview aggregates the console's headline numbers: revenue over confirmed
// and completed orders, user count, published event count and pending orders.
func (s *Service) Overview(c *gin.Context) {
	var totalRevenue float64
	s.db.Model(&models.Order{}).
		Where("status IN ?", []string{"confirmed", "completed"}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue)

	var userCount, activeEvents, pendingOrders int64
	s.db.Model(&models.Profile{}).Count(&userCount)
	s.db.Model(&models.Event{}).Where("status = ?", "published").Count(&activeEvents)
	s.db.Model(&models.Order{}).Where("status = ?", "pending").Count(&pendingOrders)

	c.JSON(http.StatusOK, gin.H{
		"totalRevenue":  totalRevenue,
		"totalUsers":    userCount,
		"activeEvents":  activeEvents,
		"pendingOrders": pendingOrders,
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID",
		})
		return 0, false
	}
	return uint(id), true
}
