// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound signals that an order does not exist
var ErrNotFound = errors.New("order not found")

// ErrInvalidTransition signals a rejected status change
var ErrInvalidTransition = errors.New("invalid status transition")

// Service handles order business logic for the admin back-office
type Service struct {
	db *gorm.DB
}

// NewService creates a new order service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// ListRequest narrows the admin order listing
type ListRequest struct {
	Status Status `form:"status"`
	Limit  int    `form:"limit"`
}

// List retrieves orders newest first, optionally filtered by status
func (s *Service) List(req *ListRequest) ([]Order, error) {
	var orders []Order

	query := s.db.Model(&Order{}).
		Preload("Items").
		Order("created_at DESC")

	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("unknown order status: %s", req.Status)
		}
		query = query.Where("status = ?", req.Status)
	}

	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return orders, nil
}

// Get retrieves a single order with its line items
func (s *Service) Get(id uint) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").Where("id = ?", id).First(&order)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &order, nil
}

// UpdateStatus mutates the status field of one order under the transition
// policy. The updated order is re-loaded and returned only after the write
// is confirmed, so callers never observe an optimistic state.
func (s *Service) UpdateStatus(id uint, status Status) (*Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown order status: %s", status)
	}

	var order Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return s.Get(id)
}

// CountByStatus returns the number of orders per status
func (s *Service) CountByStatus() (map[Status]int64, error) {
	type row struct {
		Status Status
		Count  int64
	}
	var rows []row

	err := s.db.Model(&Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	counts := make(map[Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// Revenue returns the summed total of all non-cancelled orders
func (s *Service) Revenue() (int64, error) {
	var revenue int64
	err := s.db.Model(&Order{}).
		Where("status <> ?", StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute revenue: %w", err)
	}
	return revenue, nil
}
