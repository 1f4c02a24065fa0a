package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/majorleaf/eventhub-go/internal/auth"
	"github.com/majorleaf/eventhub-go/internal/config"
	"github.com/majorleaf/eventhub-go/internal/middleware"
	"github.com/majorleaf/eventhub-go/internal/models"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	config *config.Config
}

func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, config: cfg}
}

func (s *Service) SetupRoutes(r *gin.Engine) {
	r.POST("/auth/register", s.Register)
	r.POST("/auth/login", s.Login)
	r.GET("/auth/me", middleware.RequireUser(s.config), s.CurrentProfile)
}

func (s *Service) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"fullName"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// Check if profile already exists
	var existing models.Profile
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "User already exists",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user",
		})
		return
	}

	profile := models.Profile{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         "user",
	}

	if err := s.db.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user",
		})
		return
	}

	token, err := auth.GenerateToken(s.config, profile.ID, profile.Email, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       profile.ID,
			"email":    profile.Email,
			"fullName": profile.FullName,
			"role":     profile.Role,
		},
	})
}

func (s *Service) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var profile models.Profile
	if err := s.db.Where("email = ?", req.Email).First(&profile).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	if !auth.VerifyPassword(req.Password, profile.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	token, err := auth.GenerateToken(s.config, profile.ID, profile.Email, profile.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       profile.ID,
			"email":    profile.Email,
			"fullName": profile.FullName,
			"role":     profile.Role,
		},
	})
}

func (s *Service) CurrentProfile(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var profile models.Profile
	if err := s.db.First(&profile, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Profile not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       profile.ID,
		"email":    profile.Email,
		"fullName": profile.FullName,
		"role":     profile.Role,
	})
}
