// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"gorm.io/gorm"
)

// IdempotencyKeyHeader lets clients resubmit a checkout safely. Repeated
// submissions with the same key return the originally created order.
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler handles checkout submission
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, cartStore *cart.Store, cfg *config.Config, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkout.NewService(db, cartStore, logger),
		config:          cfg,
	}
}

// Submit handles POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	token := c.GetHeader(CartTokenHeader)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart token required",
		})
		return
	}

	var req checkout.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	placed, err := h.checkoutService.Submit(c.Request.Context(), token, &req, idempotencyKey)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, checkout.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to place order",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}
