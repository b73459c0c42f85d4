// internal/domain/order/entity.go
package order

import (
	"time"
)

// Status represents the order status
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// KnownStatuses lists every valid order status
var KnownStatuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order represents a placed order. The total is fixed at creation time and
// is never recomputed from live product prices.
type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	CustomerName    string        `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail   string        `gorm:"not null;size:255;index" json:"customer_email"`
	CustomerPhone   string        `gorm:"size:50" json:"customer_phone"`
	ShippingAddress string        `gorm:"not null;size:500" json:"shipping_address"`
	ShippingCity    string        `gorm:"not null;size:100" json:"shipping_city"`
	ShippingCountry string        `gorm:"not null;size:100" json:"shipping_country"`
	TotalAmount     int64         `gorm:"not null" json:"total_amount"`
	Status          Status        `gorm:"not null;default:'pending';index" json:"status"`
	PaymentMethod   string        `gorm:"size:50" json:"payment_method"`
	PaymentStatus   PaymentStatus `gorm:"not null;default:'pending'" json:"payment_status"`
	Notes           string        `gorm:"type:text" json:"notes"`
	CheckoutToken   *string       `gorm:"uniqueIndex;size:100" json:"-"` // Idempotency key, nullable
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem captures a point-in-time snapshot of a purchased product.
// Snapshot fields are denormalized so later product edits or deletions do
// not corrupt historical orders.
type OrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	ProductID    *uint     `gorm:"index" json:"product_id"`
	ProductName  string    `gorm:"not null;size:255" json:"product_name"`
	ProductImage string    `gorm:"size:500" json:"product_image"`
	Price        int64     `gorm:"not null" json:"price"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Subtotal     int64     `gorm:"not null" json:"subtotal"` // Price * Quantity
	CreatedAt    time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// IsValid reports whether the value is one of the five known statuses
func (s Status) IsValid() bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo applies the transition policy: terminal states are frozen,
// every other move is an allowed administrative override, including going
// backward and cancelling.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	return s != next
}
