// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/flowershop-backend/internal/config"
	"github.com/your-org/flowershop-backend/internal/domain/cart"
	"github.com/your-org/flowershop-backend/internal/domain/catalog"
	"github.com/your-org/flowershop-backend/internal/domain/order"
	"github.com/your-org/flowershop-backend/internal/domain/user"
	"github.com/your-org/flowershop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/flowershop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group. Services are built once here and
// shared by the handlers that need them.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	catalogService := catalog.NewService(db, cfg)
	sessionStore := cart.NewRedisSessionStore(redisClient)
	cartService := cart.NewService(db, sessionStore, catalogService)
	userService := user.NewService(db, cfg)
	orderService := order.NewService(order.NewGormStore(db), cartService, log)

	authHandler := handlers.NewAuthHandler(userService, cartService, cfg, log)
	catalogHandler := handlers.NewCatalogHandler(catalogService, cfg)
	cartHandler := handlers.NewCartHandler(cartService, userService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService, userService, cfg)
	adminHandler := handlers.NewAdminHandler(catalogService, orderService, cfg)

	// Authentication
	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/admin/login", authHandler.AdminLogin)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}

	// Storefront catalog
	flowers := rg.Group("/flowers")
	{
		flowers.GET("", catalogHandler.ListFlowers)
		flowers.GET("/:id", catalogHandler.GetFlower)
		flowers.GET("/name/:name", catalogHandler.GetFlowerByName)
	}

	// Cart routes work for guest sessions and authenticated users alike
	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}

	// Orders: checkout is open to guests, history requires an account
	orders := rg.Group("/orders")
	orders.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		orders.POST("/checkout", orderHandler.Checkout)
		orders.GET("", orderHandler.ListMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	// Back-office management
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/flowers", adminHandler.CreateFlower)
		admin.PUT("/flowers/:id", adminHandler.UpdateFlower)
		admin.DELETE("/flowers/:id", adminHandler.DeleteFlower)
		admin.POST("/flowers/:id/image", adminHandler.UploadFlowerImage)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
	}
}
