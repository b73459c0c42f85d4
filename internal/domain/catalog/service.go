// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNotFound signals that a product does not exist. Handlers map it to a
// distinct not-found state rather than a generic failure.
var ErrNotFound = errors.New("product not found")

// DefaultDealsThreshold is the minimum discount for the storefront deals view
const DefaultDealsThreshold = 50

// Service handles catalog business logic
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

// ListRequest narrows the public product listing
type ListRequest struct {
	Category string `form:"category"`
	Section  string `form:"section"`
	Limit    int    `form:"limit"`
}

// ProductCreateRequest represents admin product creation data
type ProductCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" binding:"required,min=0"`
	OriginalPrice int64    `json:"original_price" binding:"min=0"`
	Category      string   `json:"category" binding:"required"`
	ImageURL      string   `json:"image_url"`
	Rating        float64  `json:"rating" binding:"min=0,max=5"`
	ReviewsCount  int      `json:"reviews_count" binding:"min=0"`
	InStock       bool     `json:"in_stock"`
	StockQuantity int      `json:"stock_quantity" binding:"min=0"`
	Tags          []string `json:"tags"`
	Sections      []string `json:"sections"`
}

// ProductUpdateRequest represents admin product update data
type ProductUpdateRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *int64    `json:"price"`
	OriginalPrice *int64    `json:"original_price"`
	Category      *string   `json:"category"`
	ImageURL      *string   `json:"image_url"`
	Rating        *float64  `json:"rating"`
	ReviewsCount  *int      `json:"reviews_count"`
	InStock       *bool     `json:"in_stock"`
	StockQuantity *int      `json:"stock_quantity"`
	Tags          *[]string `json:"tags"`
	Sections      *[]string `json:"sections"`
}

// List retrieves in-stock products, newest first, optionally narrowed by
// category or display section and limited to N results. A backend failure
// degrades to an empty slice so storefront pages render "no products"
// instead of crashing.
func (s *Service) List(req *ListRequest) []Product {
	var products []Product

	query := s.db.Model(&Product{}).
		Where("in_stock = ?", true).
		Order("created_at DESC")

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	if req.Section != "" {
		query = query.Where("sections LIKE ?", "%"+req.Section+"%")
	}

	if req.Limit > 0 {
		query = query.Limit(req.Limit)
	}

	if err := query.Find(&products).Error; err != nil {
		s.log.WithError(err).Error("failed to list products")
		return []Product{}
	}

	return products
}

// GetByID retrieves a single product by numeric ID
func (s *Service) GetByID(id uint) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// GetBySlug retrieves a single product by slug
func (s *Service) GetBySlug(slug string) (*Product, error) {
	var product Product
	result := s.db.Where("slug = ?", slug).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// Search performs a case-insensitive substring match across name,
// description and category over in-stock products. Callers are expected
// not to pass an empty query.
func (s *Service) Search(query string) []Product {
	var products []Product

	pattern := "%" + strings.ToLower(query) + "%"
	err := s.db.Model(&Product{}).
		Where("in_stock = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern).
		Find(&products).Error
	if err != nil {
		s.log.WithError(err).WithField("query", query).Error("product search failed")
		return []Product{}
	}

	return products
}

// DealsAbove retrieves in-stock products whose discount meets the given
// threshold, sorted descending by discount
func (s *Service) DealsAbove(thresholdPercent int) []Product {
	var products []Product

	err := s.db.Model(&Product{}).
		Where("in_stock = ?", true).
		Where("discount >= ?", thresholdPercent).
		Order("discount DESC").
		Find(&products).Error
	if err != nil {
		s.log.WithError(err).Error("failed to list deals")
		return []Product{}
	}

	return products
}

// ListCategories retrieves all categories ordered by name
func (s *Service) ListCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// --- Admin operations ---

// AdminList retrieves all products including out-of-stock ones, newest first
func (s *Service) AdminList() ([]Product, error) {
	var products []Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Create creates a new product. The discount percentage is derived from
// the original price on every write.
func (s *Service) Create(req *ProductCreateRequest) (*Product, error) {
	if err := validateSections(req.Sections); err != nil {
		return nil, err
	}

	product := Product{
		Name:          req.Name,
		Slug:          s.generateSlug(req.Name),
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Discount:      ComputeDiscount(req.Price, req.OriginalPrice),
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Rating:        req.Rating,
		ReviewsCount:  req.ReviewsCount,
		InStock:       req.InStock,
		StockQuantity: req.StockQuantity,
		Tags:          strings.Join(req.Tags, ","),
		Sections:      strings.Join(req.Sections, ","),
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// Update updates an existing product and re-derives its discount
func (s *Service) Update(id uint, req *ProductUpdateRequest) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", result.Error)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = s.generateSlug(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.ReviewsCount != nil {
		updates["reviews_count"] = *req.ReviewsCount
	}
	if req.InStock != nil {
		updates["in_stock"] = *req.InStock
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.Tags != nil {
		updates["tags"] = strings.Join(*req.Tags, ",")
	}
	if req.Sections != nil {
		if err := validateSections(*req.Sections); err != nil {
			return nil, err
		}
		updates["sections"] = strings.Join(*req.Sections, ",")
	}

	// Re-derive discount against the effective prices
	price := product.Price
	if req.Price != nil {
		price = *req.Price
	}
	originalPrice := product.OriginalPrice
	if req.OriginalPrice != nil {
		originalPrice = *req.OriginalPrice
	}
	updates["discount"] = ComputeDiscount(price, originalPrice)

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := s.db.First(&product, product.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	return &product, nil
}

// Delete soft deletes a product
func (s *Service) Delete(id uint) error {
	result := s.db.Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func validateSections(sections []string) error {
	for _, section := range sections {
		known := false
		for _, s := range KnownSections {
			if section == s {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown display section: %s", section)
		}
	}
	return nil
}

// generateSlug generates a URL-friendly slug from a product name
func (s *Service) generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '_', r == '-':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")

	return fmt.Sprintf("%s-%d", slug, time.Now().Unix())
}
