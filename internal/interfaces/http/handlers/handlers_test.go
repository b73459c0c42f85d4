package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mapStorage struct {
	data map[string]string
}

func (m *mapStorage) Get(_ context.Context, token string) (string, error) {
	return m.data[token], nil
}

func (m *mapStorage) Set(_ context.Context, token string, payload string) error {
	m.data[token] = payload
	return nil
}

func (m *mapStorage) Del(_ context.Context, token string) error {
	delete(m.data, token)
	return nil
}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	cartStore *cart.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &catalog.Category{}, &order.Order{}, &order.OrderItem{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{}
	cartStore := cart.NewStore(&mapStorage{data: make(map[string]string)}, log)

	cartHandler := NewCartHandler(db, cartStore, cfg, log)
	checkoutHandler := NewCheckoutHandler(db, cartStore, cfg, log)
	orderHandler := NewOrderHandler(db, log)
	productHandler := NewProductHandler(db, cfg, log)

	router := gin.New()
	router.GET("/products/search", productHandler.SearchProducts)
	router.GET("/cart", cartHandler.GetCart)
	router.POST("/cart/items", cartHandler.AddItem)
	router.POST("/checkout", checkoutHandler.Submit)
	router.PUT("/admin/orders/:id/status", orderHandler.AdminUpdateOrderStatus)

	return &testEnv{router: router, db: db, cartStore: cartStore}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(CartTokenHeader, token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestGetCart_MintsTokenForNewVisitor(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/cart", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(CartTokenHeader))
}

func TestGetCart_EchoesExistingToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/cart", "visitor-token", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "visitor-token", w.Header().Get(CartTokenHeader))
}

func TestAddItem_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/cart/items", "tok", gin.H{"product_id": 99, "quantity": 1})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItem_OutOfStockProduct(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&catalog.Product{
		Name: "Sold Out", Slug: "sold-out", Price: 1000, Category: "c", InStock: false,
	}).Error)

	w := env.do(t, http.MethodPost, "/cart/items", "tok", gin.H{"product_id": 1, "quantity": 1})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddItem_Success(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&catalog.Product{
		Name: "Phone", Slug: "phone", Price: 800000, Category: "electronics", InStock: true,
	}).Error)

	w := env.do(t, http.MethodPost, "/cart/items", "tok", gin.H{"product_id": 1, "quantity": 2})

	require.Equal(t, http.StatusOK, w.Code)

	c := env.cartStore.Get(context.Background(), "tok")
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/products/search?q=+++", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_MissingCartToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/checkout", "", gin.H{
		"full_name": "Ada Lovelace", "email": "ada@example.com",
		"address": "1 Engine St", "city": "Sofia", "country": "Bulgaria",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/checkout", "tok", gin.H{
		"full_name": "Ada Lovelace", "email": "ada@example.com",
		"address": "1 Engine St", "city": "Sofia", "country": "Bulgaria",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestCheckout_Success(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&catalog.Product{
		Name: "Phone", Slug: "phone", Price: 800000, Category: "electronics", InStock: true,
	}).Error)

	w := env.do(t, http.MethodPost, "/cart/items", "tok", gin.H{"product_id": 1, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/checkout", "tok", gin.H{
		"full_name": "Ada Lovelace", "email": "ada@example.com",
		"address": "1 Engine St", "city": "Sofia", "country": "Bulgaria",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&order.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.True(t, env.cartStore.Get(context.Background(), "tok").IsEmpty())
}

func TestUpdateOrderStatus_InvalidTransitionConflicts(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&order.Order{
		CustomerName: "Ada", CustomerEmail: "ada@example.com",
		ShippingAddress: "1 Engine St", ShippingCity: "Sofia", ShippingCountry: "Bulgaria",
		TotalAmount: 100, Status: order.StatusDelivered, PaymentStatus: order.PaymentStatusPending,
	}).Error)

	w := env.do(t, http.MethodPut, "/admin/orders/1/status", "", gin.H{"status": "pending"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateOrderStatus_Success(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&order.Order{
		CustomerName: "Ada", CustomerEmail: "ada@example.com",
		ShippingAddress: "1 Engine St", ShippingCity: "Sofia", ShippingCountry: "Bulgaria",
		TotalAmount: 100, Status: order.StatusPending, PaymentStatus: order.PaymentStatusPending,
	}).Error)

	w := env.do(t, http.MethodPut, "/admin/orders/1/status", "", gin.H{"status": "shipped"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"shipped"`)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/admin/orders/42/status", "", gin.H{"status": "shipped"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
