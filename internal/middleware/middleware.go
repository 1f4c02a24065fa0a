package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/majorleaf/eventhub-go/internal/auth"
	"github.com/majorleaf/eventhub-go/internal/config"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// RequireUser rejects requests without a valid bearer token. The redirect
// field tells clients where the original app would have navigated.
func RequireUser(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(cfg, c)
		if !ok {
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin additionally checks the admin role; non-admins are sent back
// to the event listing.
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(cfg, c)
		if !ok {
			return
		}

		if claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Admin access required",
				"redirect": "/events",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

func authenticate(cfg *config.Config, c *gin.Context) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "Authorization header required",
			"redirect": "/signin",
		})
		return nil, false
	}

	tokenString, err := auth.ExtractTokenFromHeader(authHeader)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "Invalid authorization header",
			"redirect": "/signin",
		})
		return nil, false
	}

	claims, err := auth.ValidateToken(cfg, tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "Invalid token",
			"redirect": "/signin",
		})
		return nil, false
	}

	return claims, true
}
