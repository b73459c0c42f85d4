// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/admin"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&catalog.Category{},
		&catalog.Product{},
		&order.Order{},
		&order.OrderItem{},
		&admin.User{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_in_stock ON products(category, in_stock)",
		"CREATE INDEX IF NOT EXISTS idx_products_discount ON products(discount DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created_at ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds a development catalog and a default admin account
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return err
	}
	if err := m.seedProducts(); err != nil {
		return err
	}
	if err := m.seedAdminUser(); err != nil {
		return err
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedCategories() error {
	var count int64
	m.db.Model(&catalog.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []catalog.Category{
		{Name: "Téléphones", Slug: "telephones", Description: "Smartphones et tablettes"},
		{Name: "Laptops", Slug: "laptops", Description: "Ordinateurs portables"},
		{Name: "TV", Slug: "tv", Description: "Téléviseurs et écrans"},
		{Name: "Accessoires", Slug: "accessoires", Description: "Écouteurs, casques et accessoires"},
	}

	for _, c := range categories {
		if err := m.db.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	return nil
}

func (m *Migration) seedProducts() error {
	var count int64
	m.db.Model(&catalog.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []catalog.Product{
		{
			Name:          "iPhone 14 Pro",
			Slug:          "iphone-14-pro",
			Description:   "Dernier iPhone avec puce A16 Bionic et caméra haute résolution 48MP",
			Price:         800000,
			OriginalPrice: 950000,
			Category:      "Téléphones",
			Rating:        4.8,
			ReviewsCount:  256,
			InStock:       true,
			StockQuantity: 24,
			Sections:      "hero,popular",
		},
		{
			Name:          "MacBook Pro 14\"",
			Slug:          "macbook-pro-14",
			Description:   "PC portable performant avec puce M2 Pro pour le travail et le jeu",
			Price:         1450000,
			OriginalPrice: 1800000,
			Category:      "Laptops",
			Rating:        4.9,
			ReviewsCount:  189,
			InStock:       true,
			StockQuantity: 12,
			Sections:      "popular,trending",
		},
		{
			Name:          "Samsung Galaxy S23",
			Slug:          "samsung-galaxy-s23",
			Description:   "Smartphone Android premium avec écran AMOLED 120Hz",
			Price:         650000,
			OriginalPrice: 750000,
			Category:      "Téléphones",
			Rating:        4.7,
			ReviewsCount:  312,
			InStock:       true,
			StockQuantity: 31,
			Sections:      "trending",
		},
		{
			Name:          "AirPods Pro",
			Slug:          "airpods-pro",
			Description:   "Écouteurs sans fil avec réduction de bruit active",
			Price:         180000,
			OriginalPrice: 220000,
			Category:      "Accessoires",
			Rating:        4.6,
			ReviewsCount:  478,
			InStock:       true,
			StockQuantity: 57,
			Sections:      "deals,recent",
		},
		{
			Name:          "Samsung QLED 55\"",
			Slug:          "samsung-qled-55",
			Description:   "Téléviseur 4K QLED avec HDR et smart TV",
			Price:         950000,
			OriginalPrice: 1150000,
			Category:      "TV",
			Rating:        4.8,
			ReviewsCount:  234,
			InStock:       true,
			StockQuantity: 9,
			Sections:      "recent",
		},
	}

	for _, p := range products {
		p.Discount = catalog.ComputeDiscount(p.Price, p.OriginalPrice)
		if err := m.db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
	}
	return nil
}

func (m *Migration) seedAdminUser() error {
	var count int64
	m.db.Model(&admin.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	// Development credentials only, rotate before any real deployment
	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe!2024"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	seedAdmin := admin.User{
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		FullName:     "Store Admin",
		IsActive:     true,
	}

	if err := m.db.Create(&seedAdmin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}
