package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/markethub/marketplace-api/docs"
	"github.com/markethub/marketplace-api/internal/api/handler"
	"github.com/markethub/marketplace-api/internal/api/middleware"
	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/service"
	"github.com/markethub/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/markethub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/markethub/marketplace-api/internal/infrastructure/db/redis"
	"github.com/markethub/marketplace-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	storeRepo := mongodb.NewStoreRepository(db)
	storeCache := redisdb.NewStoreCache(rdb)

	hasher := service.NewPasswordHasher(0) // bcrypt default cost
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	storeService := service.NewStoreService(storeRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	storeHandler := handler.NewStoreHandler(storeService, storeCache, log)

	requireAuth := middleware.Auth(authService)
	optionalAuth := middleware.AuthOptional(authService)
	vendorOnly := middleware.RequireRole(domain.RoleVendor)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.PUT("/me", authHandler.UpdateMe, requireAuth)

	// --- Store routes ---
	stores := e.Group("/api/v1/stores")
	stores.POST("", storeHandler.Create, requireAuth, vendorOnly)
	stores.GET("", storeHandler.List, optionalAuth)
	stores.GET("/:id", storeHandler.GetByID)
	stores.PUT("/:id", storeHandler.Update, requireAuth, vendorOnly)
	stores.PATCH("/:id/status", storeHandler.UpdateStatus, requireAuth, adminOnly)
	stores.DELETE("/:id", storeHandler.Delete, requireAuth, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
