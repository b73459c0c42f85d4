// internal/domain/catalog/entity.go
package catalog

import (
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Display sections a product can be pinned to on the storefront.
const (
	SectionHero     = "hero"
	SectionDeals    = "deals"
	SectionPopular  = "popular"
	SectionTrending = "trending"
	SectionRecent   = "recent"
)

// KnownSections lists every valid display section
var KnownSections = []string{SectionHero, SectionDeals, SectionPopular, SectionTrending, SectionRecent}

// Product represents the catalog product entity. Prices are stored in
// minor currency units.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         int64          `gorm:"not null" json:"price"`
	OriginalPrice int64          `json:"original_price"` // List price before discount, 0 when unset
	Discount      int            `gorm:"default:0" json:"discount"`
	Category      string         `gorm:"not null;size:100;index" json:"category"`
	ImageURL      string         `gorm:"size:500" json:"image_url"`
	Rating        float64        `json:"rating"`
	ReviewsCount  int            `gorm:"default:0" json:"reviews_count"`
	InStock       bool           `gorm:"default:true;index" json:"in_stock"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	Tags          string         `gorm:"size:500" json:"tags"`     // Comma-separated tags
	Sections      string         `gorm:"size:255" json:"sections"` // Comma-separated display sections
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Category represents a navigation category
type Category struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description  string         `gorm:"size:500" json:"description"`
	ImageURL     string         `gorm:"size:500" json:"image_url"`
	ProductCount int            `gorm:"default:0" json:"product_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// ComputeDiscount derives the discount percentage from the original price.
// Returns 0 when there is no markdown.
func ComputeDiscount(price, originalPrice int64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int(math.Round(float64(originalPrice-price) / float64(originalPrice) * 100))
}

// SectionList returns the display sections as a slice
func (p *Product) SectionList() []string {
	return splitCSV(p.Sections)
}

// TagList returns the tags as a slice
func (p *Product) TagList() []string {
	return splitCSV(p.Tags)
}

// InSection reports whether the product is pinned to the given section
func (p *Product) InSection(section string) bool {
	for _, s := range p.SectionList() {
		if s == section {
			return true
		}
	}
	return false
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
