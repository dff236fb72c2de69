// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lapalette/backend/internal/config"
	"github.com/lapalette/backend/internal/handlers"
	"github.com/lapalette/backend/internal/middleware"
	"github.com/lapalette/backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	catalogService := services.NewCatalogService(db)
	customerService := services.NewCustomerService(db)
	orderService := services.NewOrderService(db)
	messageService := services.NewMessageService(db, notificationService)
	authService := services.NewAuthService(services.NewInMemoryCredentialStore(services.DemoUsers()))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	orderHandler := handlers.NewOrderHandler(orderService, messageService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Authentication routes (demo users, no real security)
	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/reset-demo", authHandler.ResetPassword)
	}

	api := r.Group("/api")
	{
		// Catalog routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		// Customer profile routes
		customers := api.Group("/customers")
		{
			customers.POST("/register", customerHandler.Register)
			customers.GET("/me", customerHandler.GetProfile)
			customers.PUT("/me", customerHandler.UpdateProfile)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("", orderHandler.CreateOrder)

			// The terminal transition is keyed by public code, not id
			orders.POST("/deliver/:publicCode", orderHandler.Deliver)

			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/messages", orderHandler.GetMessages)
			orders.POST("/:id/messages", orderHandler.CreateMessage)
			orders.POST("/:id/read/client", orderHandler.MarkReadByClient)
			orders.POST("/:id/read/staff", orderHandler.MarkReadByStaff)

			orders.POST("/:id/stock-confirm", orderHandler.ConfirmStock)
			orders.POST("/:id/pay", orderHandler.Pay)
			orders.POST("/:id/prepare", orderHandler.Prepare)
			orders.POST("/:id/ready-for-delivery", orderHandler.ReadyForDelivery)
		}
	}

	return r
}
