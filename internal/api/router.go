package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/warungkita/storefront-api/internal/api/handler"
	"github.com/warungkita/storefront-api/internal/api/middleware"
	"github.com/warungkita/storefront-api/internal/core/service"
	mongodb "github.com/warungkita/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/warungkita/storefront-api/internal/infrastructure/db/redis"
	"github.com/warungkita/storefront-api/internal/pkg/config"
)

// NewRouter builds the Echo instance with every dependency wired and all
// routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Repositories ---
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	catalogCache := redisdb.NewCatalogCache(rdb)

	// --- Services ---
	adminService := service.NewAdminService(adminRepo, log)
	catalogService := service.NewCatalogService(productRepo, adminService, catalogCache, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	orderService := service.NewOrderService(orderRepo, cartRepo, adminService, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)

	// --- Handlers ---
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(adminService)
	authHandler := handler.NewAuthHandler(authService)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Catalog: browsing is open, writes are admin-gated in the service ---
	e.GET("/v1/products", catalogHandler.List, optionalAuth)
	e.POST("/v1/products", catalogHandler.Create, requireAuth)
	e.PUT("/v1/products/:id", catalogHandler.Update, requireAuth)
	e.DELETE("/v1/products/:id", catalogHandler.Delete, requireAuth)

	// --- Cart ---
	e.GET("/v1/cart", cartHandler.Get, optionalAuth)
	e.DELETE("/v1/cart", cartHandler.Clear, requireAuth)
	e.POST("/v1/cart/items", cartHandler.Add, requireAuth)
	e.PUT("/v1/cart/items/:id", cartHandler.SetQuantity, requireAuth)
	e.DELETE("/v1/cart/items/:id", cartHandler.Remove, requireAuth)

	// --- Orders ---
	e.POST("/v1/orders", orderHandler.Checkout, requireAuth)
	e.GET("/v1/orders", orderHandler.ListMine, requireAuth)

	// --- Admin ---
	e.GET("/v1/admin/me", adminHandler.Me, optionalAuth)
	e.POST("/v1/admin/bootstrap", adminHandler.Bootstrap, requireAuth)
	e.GET("/v1/admin/orders", orderHandler.ListAll, requireAuth)
	e.PATCH("/v1/admin/orders/:id/status", orderHandler.UpdateStatus, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
