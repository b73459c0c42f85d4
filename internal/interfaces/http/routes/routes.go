// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes under the given group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	cartStore := cart.NewStore(cart.NewRedisStorage(redisClient, cfg.Cart.TTL), logger)

	SetupCatalogRoutes(rg, db, cfg, logger)
	SetupCartRoutes(rg, db, cartStore, cfg, logger)
	SetupCheckoutRoutes(rg, db, cartStore, cfg, logger)
	SetupAdminRoutes(rg, db, cfg, logger)
}

// SetupCatalogRoutes sets up public product and category routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	productHandler := handlers.NewProductHandler(db, cfg, logger)
	categoryHandler := handlers.NewCategoryHandler(db, logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/deals", productHandler.GetDeals)
		products.GET("/:idOrSlug", productHandler.GetProduct)
	}

	rg.GET("/categories", categoryHandler.GetCategories)
}

// SetupCartRoutes sets up cart routes keyed by the X-Cart-Token header
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cartStore *cart.Store, cfg *config.Config, logger *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(db, cartStore, cfg, logger)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up the checkout submission route
func SetupCheckoutRoutes(rg *gin.RouterGroup, db *gorm.DB, cartStore *cart.Store, cfg *config.Config, logger *logrus.Logger) {
	checkoutHandler := handlers.NewCheckoutHandler(db, cartStore, cfg, logger)

	rg.POST("/checkout", checkoutHandler.Submit)
}

// SetupAdminRoutes sets up authentication and back-office routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	productHandler := handlers.NewProductHandler(db, cfg, logger)
	orderHandler := handlers.NewOrderHandler(db, logger)
	dashboardHandler := handlers.NewDashboardHandler(db, logger)
	uploadHandler := handlers.NewUploadHandler(cfg, logger)

	admin := rg.Group("/admin")

	// Public admin endpoint
	admin.POST("/login", authHandler.Login)

	// Protected admin endpoints
	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	protected.Use(middleware.AdminMiddleware())
	{
		// Product management
		products := protected.Group("/products")
		{
			products.GET("", productHandler.AdminGetProducts)
			products.GET("/:id", productHandler.AdminGetProduct)
			products.POST("", productHandler.AdminCreateProduct)
			products.PUT("/:id", productHandler.AdminUpdateProduct)
			products.DELETE("/:id", productHandler.AdminDeleteProduct)
		}

		// Order management
		orders := protected.Group("/orders")
		{
			orders.GET("", orderHandler.AdminGetOrders)
			orders.GET("/:id", orderHandler.AdminGetOrder)
			orders.PUT("/:id/status", orderHandler.AdminUpdateOrderStatus)
		}

		// Dashboard metrics
		protected.GET("/dashboard", dashboardHandler.GetDashboard)

		// Media uploads
		protected.POST("/uploads", uploadHandler.UploadImage)
	}
}
