package main

import (
	"log"

	"github.com/majorleaf/eventhub-go/internal/config"
	"github.com/majorleaf/eventhub-go/internal/database"
	"github.com/majorleaf/eventhub-go/internal/redis"
	"github.com/majorleaf/eventhub-go/internal/services/account"
	"github.com/majorleaf/eventhub-go/internal/services/admin"
	"github.com/majorleaf/eventhub-go/internal/services/booking"
	"github.com/majorleaf/eventhub-go/internal/services/event"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Connect to Redis (used only when seat decrement is enabled)
	var redisClient *redis.Client
	if cfg.SeatDecrementEnabled {
		redisClient = redis.NewClient(cfg)
	}

	// Create services
	accountService := account.NewService(db, cfg)
	eventService := event.NewService(db)
	bookingService := booking.NewService(db, redisClient, cfg)
	adminService := admin.NewService(db, cfg)

	// Setup Gin router
	r := gin.Default()

	// Add CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	accountService.SetupRoutes(r)
	eventService.SetupRoutes(r)
	bookingService.SetupRoutes(r)
	adminService.SetupRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "eventhub",
		})
	})

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
