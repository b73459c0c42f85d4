// internal/interfaces/http/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	catalogService *catalog.Service
	logger         *logrus.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalog.NewService(db, logger),
		logger:         logger,
	}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		h.logger.WithError(err).Error("failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}
