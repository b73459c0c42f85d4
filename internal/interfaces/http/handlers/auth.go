// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/admin"
	"gorm.io/gorm"
)

// AuthHandler handles admin authentication
type AuthHandler struct {
	adminService *admin.Service
	logger       *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		adminService: admin.NewService(db, cfg),
		logger:       logger,
	}
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	response, err := h.adminService.Login(&req)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}
		h.logger.WithError(err).Error("admin login failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Login failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    response,
	})
}
