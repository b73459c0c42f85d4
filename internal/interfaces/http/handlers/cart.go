// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CartTokenHeader carries the visitor's cart token. The server mints a
// token on first use and echoes it on every cart response so the client
// can persist it.
const CartTokenHeader = "X-Cart-Token"

// CartHandler handles cart endpoints
type CartHandler struct {
	cartStore      *cart.Store
	catalogService *catalog.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cartStore *cart.Store, cfg *config.Config, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartStore:      cartStore,
		catalogService: catalog.NewService(db, logger),
		config:         cfg,
	}
}

// cartToken resolves the visitor's token, minting one if the header is absent
func (h *CartHandler) cartToken(c *gin.Context) string {
	token := c.GetHeader(CartTokenHeader)
	if token == "" {
		token = cart.NewToken()
	}
	c.Header(CartTokenHeader, token)
	return token
}

func cartResponse(token string, cr *cart.Cart) gin.H {
	return gin.H{
		"cart_token": token,
		"items":      cr.Items,
		"totals":     cr.Totals(),
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	token := h.cartToken(c)

	cr := h.cartStore.Get(c.Request.Context(), token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse(token, cr),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	token := h.cartToken(c)

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return
	}

	if !product.InStock {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Product is out of stock",
		})
		return
	}

	cr, err := h.cartStore.Add(c.Request.Context(), token, product, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    cartResponse(token, cr),
	})
}

// UpdateItem handles PUT /cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	token := h.cartToken(c)

	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cr, err := h.cartStore.UpdateQuantity(c.Request.Context(), token, productID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data":    cartResponse(token, cr),
	})
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	token := h.cartToken(c)

	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}

	cr, err := h.cartStore.Remove(c.Request.Context(), token, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    cartResponse(token, cr),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	token := h.cartToken(c)

	if err := h.cartStore.Clear(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	cr := h.cartStore.Get(c.Request.Context(), token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    cartResponse(token, cr),
	})
}

func parseProductIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return uint(id), true
}
