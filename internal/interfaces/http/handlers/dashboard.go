// internal/interfaces/http/handlers/dashboard.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// DashboardHandler serves back-office summary metrics
type DashboardHandler struct {
	db           *gorm.DB
	orderService *order.Service
	logger       *logrus.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		db:           db,
		orderService: order.NewService(db),
		logger:       logger,
	}
}

// GetDashboard handles GET /admin/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	counts, err := h.orderService.CountByStatus()
	if err != nil {
		h.logger.WithError(err).Error("failed to count orders")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load dashboard",
		})
		return
	}

	revenue, err := h.orderService.Revenue()
	if err != nil {
		h.logger.WithError(err).Error("failed to compute revenue")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load dashboard",
		})
		return
	}

	var productCount int64
	if err := h.db.Model(&catalog.Product{}).Count(&productCount).Error; err != nil {
		h.logger.WithError(err).Error("failed to count products")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load dashboard",
		})
		return
	}

	var totalOrders int64
	for _, n := range counts {
		totalOrders += n
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard retrieved successfully",
		"data": gin.H{
			"total_orders":     totalOrders,
			"orders_by_status": counts,
			"revenue":          revenue,
			"total_products":   productCount,
		},
	})
}
