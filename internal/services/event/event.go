package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/majorleaf/eventhub-go/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.GET("/events", s.ListEvents)
	r.GET("/events/categories", s.ListCategories)
	r.GET("/events/:id", s.GetEvent)
}

// ListEvents loads every upcoming event and applies the in-memory filter on
// top. The full upcoming set is always loaded; there is no pagination.
func (s *Service) ListEvents(c *gin.Context) {
	var events []models.Event
	result := s.db.Where("event_date >= ?", time.Now()).Order("event_date asc").Find(&events)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch events, please try again",
		})
		return
	}

	filtered := Filter(events, c.Query("query"), c.Query("category"), c.Query("price"))

	c.JSON(http.StatusOK, gin.H{
		"events": filtered,
		"count":  len(filtered),
	})
}

func (s *Service) GetEvent(c *gin.Context) {
	eventIDStr := c.Param("id")
	eventID, err := strconv.ParseUint(eventIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid event ID",
		})
		return
	}

	var event models.Event
	result := s.db.First(&event, uint(eventID))
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

	c.JSON(http.StatusOK, event)
}

func (s *Service) ListCategories(c *gin.Context) {
	var categories []string
	result := s.db.Model(&models.Event{}).Distinct().Order("category asc").Pluck("category", &categories)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch categories, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}
