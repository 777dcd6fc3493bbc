package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/example/cashwave/internal/cart"
	"github.com/example/cashwave/internal/config"
	"github.com/example/cashwave/internal/handlers"
	"github.com/example/cashwave/internal/middleware"
	"github.com/example/cashwave/internal/repository"
	"github.com/example/cashwave/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	purchases := repository.NewPurchaseRepository(db)
	carts := cart.NewRedisStore(rdb)

	authz := services.NewAuthorizer(users, cfg.AdminUIDs, cfg.AdminEmail, cfg.EmailHeuristic)
	whatsapp := services.NewWhatsAppService(cfg.StoreName, cfg.SupportWhatsApp, cfg.PaymentAccounts)
	entitlements := services.NewEntitlementService(purchases, cfg.DownloadBaseURL)

	var telegram *services.TelegramService
	if cfg.TelegramBotToken != "" {
		telegram = services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	}

	orderService := services.NewOrderService(orders, users, carts, entitlements, authz, whatsapp, telegram)

	authHandler := handlers.NewAuthHandler(users, cfg)
	productHandler := handlers.NewProductHandler(products)
	cartHandler := handlers.NewCartHandler(carts, products)
	orderHandler := handlers.NewOrderHandler(orderService, orders)
	profileHandler := handlers.NewProfileHandler(users, entitlements, whatsapp)
	adminHandler := handlers.NewAdminHandler(orderService, orders, users, products)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Public catalog
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Patch("/cart/items/:productId", cartHandler.AdjustItem)
	protected.Delete("/cart/items/:productId", cartHandler.RemoveItem)

	protected.Post("/checkout", orderHandler.Checkout)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Get("/purchases", profileHandler.ListPurchases)
	protected.Get("/purchases/:productId", profileHandler.CheckPurchased)

	// Admin routes
	admin := protected.Group("/admin", middleware.AdminMiddleware(authz))
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Post("/orders/:id/confirm", adminHandler.ConfirmOrder)
	admin.Post("/orders/:id/regrant", adminHandler.RegrantOrder)
	admin.Get("/users", adminHandler.ListAllUsers)
	admin.Post("/users/:id/promote", adminHandler.PromoteUser)

	// Catalog writes are admin only
	protected.Post("/products", middleware.AdminMiddleware(authz), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.AdminMiddleware(authz), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.AdminMiddleware(authz), productHandler.DeleteProduct)
}
