package catalog

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Product{}, &Category{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewService(db, log)
}

func seedProduct(t *testing.T, svc *Service, p Product) Product {
	t.Helper()
	require.NoError(t, svc.db.Create(&p).Error)
	return p
}

func TestList_InStockOnly(t *testing.T) {
	svc := newTestService(t)

	seedProduct(t, svc, Product{Name: "Visible", Slug: "visible", Price: 1000, Category: "electronics", InStock: true})
	seedProduct(t, svc, Product{Name: "Hidden", Slug: "hidden", Price: 1000, Category: "electronics", InStock: false})

	products := svc.List(&ListRequest{})

	require.Len(t, products, 1)
	assert.Equal(t, "Visible", products[0].Name)
}

func TestList_FilterByCategoryAndSection(t *testing.T) {
	svc := newTestService(t)

	seedProduct(t, svc, Product{Name: "Phone", Slug: "phone", Price: 1000, Category: "electronics", Sections: "hero,popular", InStock: true})
	seedProduct(t, svc, Product{Name: "Chair", Slug: "chair", Price: 1000, Category: "furniture", Sections: "popular", InStock: true})
	seedProduct(t, svc, Product{Name: "Desk", Slug: "desk", Price: 1000, Category: "furniture", InStock: true})

	byCategory := svc.List(&ListRequest{Category: "furniture"})
	require.Len(t, byCategory, 2)

	bySection := svc.List(&ListRequest{Section: SectionPopular})
	require.Len(t, bySection, 2)

	both := svc.List(&ListRequest{Category: "electronics", Section: SectionHero})
	require.Len(t, both, 1)
	assert.Equal(t, "Phone", both[0].Name)
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	svc := newTestService(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, svc, Product{Name: "Oldest", Slug: "oldest", Price: 1, Category: "c", InStock: true, CreatedAt: base})
	seedProduct(t, svc, Product{Name: "Middle", Slug: "middle", Price: 1, Category: "c", InStock: true, CreatedAt: base.Add(time.Hour)})
	seedProduct(t, svc, Product{Name: "Newest", Slug: "newest", Price: 1, Category: "c", InStock: true, CreatedAt: base.Add(2 * time.Hour)})

	products := svc.List(&ListRequest{Limit: 2})

	require.Len(t, products, 2)
	assert.Equal(t, "Newest", products[0].Name)
	assert.Equal(t, "Middle", products[1].Name)
}

func TestGetBySlug(t *testing.T) {
	svc := newTestService(t)

	seeded := seedProduct(t, svc, Product{Name: "Phone", Slug: "phone-123", Price: 1000, Category: "electronics", InStock: true})

	found, err := svc.GetBySlug("phone-123")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = svc.GetBySlug("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_CaseInsensitiveAcrossFields(t *testing.T) {
	svc := newTestService(t)

	seedProduct(t, svc, Product{Name: "iPhone 14 Pro", Slug: "iphone", Price: 800000, Category: "electronics", InStock: true})
	seedProduct(t, svc, Product{Name: "Case", Slug: "case", Description: "Fits every iPhone model", Price: 2000, Category: "accessories", InStock: true})
	seedProduct(t, svc, Product{Name: "Sold Out iPhone", Slug: "sold-out", Price: 700000, Category: "electronics", InStock: false})
	seedProduct(t, svc, Product{Name: "Sofa", Slug: "sofa", Price: 90000, Category: "furniture", InStock: true})

	results := svc.Search("IPHONE")

	require.Len(t, results, 2)
	for _, p := range results {
		assert.True(t, p.InStock)
	}
}

func TestDealsAbove_SortedByDiscount(t *testing.T) {
	svc := newTestService(t)

	seedProduct(t, svc, Product{Name: "Small", Slug: "small", Price: 900, OriginalPrice: 1000, Discount: 10, Category: "c", InStock: true})
	seedProduct(t, svc, Product{Name: "Big", Slug: "big", Price: 300, OriginalPrice: 1000, Discount: 70, Category: "c", InStock: true})
	seedProduct(t, svc, Product{Name: "Half", Slug: "half", Price: 500, OriginalPrice: 1000, Discount: 50, Category: "c", InStock: true})

	deals := svc.DealsAbove(DefaultDealsThreshold)

	require.Len(t, deals, 2)
	assert.Equal(t, "Big", deals[0].Name)
	assert.Equal(t, "Half", deals[1].Name)
}

func TestCreate_DerivesDiscountAndSlug(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&ProductCreateRequest{
		Name:          "iPhone 14 Pro",
		Price:         800000,
		OriginalPrice: 950000,
		Category:      "electronics",
		InStock:       true,
		Tags:          []string{"smartphone", "apple"},
		Sections:      []string{SectionHero, SectionPopular},
	})

	require.NoError(t, err)
	assert.Equal(t, 16, created.Discount)
	assert.Contains(t, created.Slug, "iphone-14-pro")
	assert.Equal(t, "smartphone,apple", created.Tags)
	assert.Equal(t, "hero,popular", created.Sections)
}

func TestCreate_RejectsUnknownSection(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(&ProductCreateRequest{
		Name:     "Phone",
		Price:    1000,
		Category: "electronics",
		Sections: []string{"bargain-bin"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown display section")
}

func TestUpdate_RederivesDiscount(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(&ProductCreateRequest{
		Name:          "Phone",
		Price:         800000,
		OriginalPrice: 950000,
		Category:      "electronics",
	})
	require.NoError(t, err)
	require.Equal(t, 16, created.Discount)

	newPrice := int64(475000)
	updated, err := svc.Update(created.ID, &ProductUpdateRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, newPrice, updated.Price)
	assert.Equal(t, 50, updated.Discount)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t)

	name := "Ghost"
	_, err := svc.Update(99, &ProductUpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_SoftDeletesAndHidesProduct(t *testing.T) {
	svc := newTestService(t)

	created := seedProduct(t, svc, Product{Name: "Phone", Slug: "phone", Price: 1000, Category: "electronics", InStock: true})

	require.NoError(t, svc.Delete(created.ID))

	_, err := svc.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(created.ID), ErrNotFound)
}

func TestAdminList_IncludesOutOfStock(t *testing.T) {
	svc := newTestService(t)

	seedProduct(t, svc, Product{Name: "In", Slug: "in", Price: 1, Category: "c", InStock: true})
	seedProduct(t, svc, Product{Name: "Out", Slug: "out", Price: 1, Category: "c", InStock: false})

	products, err := svc.AdminList()
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestListCategories_OrderedByName(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.db.Create(&Category{Name: "Furniture", Slug: "furniture"}).Error)
	require.NoError(t, svc.db.Create(&Category{Name: "Electronics", Slug: "electronics"}).Error)

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Electronics", categories[0].Name)
	assert.Equal(t, "Furniture", categories[1].Name)
}
