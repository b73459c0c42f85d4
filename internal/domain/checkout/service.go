// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// ErrEmptyCart signals a submission attempt with nothing to purchase.
// It is raised before any order write happens.
var ErrEmptyCart = errors.New("cart is empty")

// ErrMissingFields signals that required checkout fields are absent
var ErrMissingFields = errors.New("missing required checkout fields")

// DefaultPaymentMethod is recorded when the form does not name one
const DefaultPaymentMethod = "cash_on_delivery"

// Service converts a cart snapshot into a persisted order
type Service struct {
	db        *gorm.DB
	cartStore *cart.Store
	log       *logrus.Logger
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cartStore *cart.Store, log *logrus.Logger) *Service {
	return &Service{
		db:        db,
		cartStore: cartStore,
		log:       log,
	}
}

// SubmitRequest carries the contact, shipping and payment form data
type SubmitRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	Country       string `json:"country" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

// validate re-checks required fields so the contract holds for callers
// that bypass HTTP binding
func (r *SubmitRequest) validate() error {
	required := map[string]string{
		"full_name": r.FullName,
		"email":     r.Email,
		"address":   r.Address,
		"city":      r.City,
		"country":   r.Country,
	}

	var missing []string
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// Submit places an order from the current cart snapshot. The order header
// and its item snapshots are written in a single transaction, with
// total_amount fixed to the cart subtotal at submission time. The cart is
// cleared only after the order is committed; on failure it is left intact
// so the visitor can retry.
//
// A non-empty idempotencyKey makes resubmission safe: the first accepted
// submission wins and later ones return the already-created order.
func (s *Service) Submit(ctx context.Context, cartToken string, req *SubmitRequest, idempotencyKey string) (*order.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	if idempotencyKey != "" {
		if existing, err := s.findByToken(idempotencyKey); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	snapshot := s.cartStore.Get(ctx, cartToken)
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	totals := snapshot.Totals()

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	o := order.Order{
		CustomerName:    req.FullName,
		CustomerEmail:   req.Email,
		CustomerPhone:   req.Phone,
		ShippingAddress: req.Address,
		ShippingCity:    req.City,
		ShippingCountry: req.Country,
		TotalAmount:     totals.Subtotal,
		Status:          order.StatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   order.PaymentStatusPending,
		Notes:           req.Notes,
	}
	if idempotencyKey != "" {
		o.CheckoutToken = &idempotencyKey
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range snapshot.Items {
			productID := item.ProductID
			orderItem := order.OrderItem{
				OrderID:      o.ID,
				ProductID:    &productID,
				ProductName:  item.Name,
				ProductImage: item.ImageURL,
				Price:        item.Price,
				Quantity:     item.Quantity,
				Subtotal:     item.Price * int64(item.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Clear the visitor's cart now that the order is committed. A failure
	// here leaves a stale cart but a valid order, so log and move on.
	if err := s.cartStore.Clear(ctx, cartToken); err != nil {
		s.log.WithError(err).WithField("order_id", o.ID).Warn("failed to clear cart after checkout")
	}

	var placed order.Order
	if err := s.db.Preload("Items").First(&placed, o.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load placed order: %w", err)
	}

	return &placed, nil
}

func (s *Service) findByToken(token string) (*order.Order, error) {
	var existing order.Order
	result := s.db.Preload("Items").Where("checkout_token = ?", token).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check idempotency token: %w", result.Error)
	}
	return &existing, nil
}
