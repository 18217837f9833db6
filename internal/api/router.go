package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/jackvpt/hhguesthouses-api/docs"
	"github.com/jackvpt/hhguesthouses-api/internal/api/handler"
	"github.com/jackvpt/hhguesthouses-api/internal/api/middleware"
	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
	"github.com/jackvpt/hhguesthouses-api/internal/core/service"
	"github.com/jackvpt/hhguesthouses-api/internal/infrastructure/config"
	mongodb "github.com/jackvpt/hhguesthouses-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jackvpt/hhguesthouses-api/internal/infrastructure/db/redis"
)

// Dependencies carries everything the router needs to assemble the service
// graph. Repositories and services are constructed here; infrastructure
// connections are owned by the caller.
type Dependencies struct {
	DB    *mongo.Database
	Redis *redis.Client
	Cfg   *config.Config
	Audit ports.AuditRecorder
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{deps.Cfg.CORSOrigin},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("guesthouses"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	occupancyRepo := mongodb.NewOccupancyRepository(deps.DB)
	guestHouseRepo := mongodb.NewGuestHouseRepository(deps.DB)
	auditRepo := mongodb.NewAuditRepository(deps.DB)

	authService := service.NewAuthService(userRepo, deps.Audit, deps.Cfg.JWTSecret, deps.Cfg.TokenTTL, deps.Cfg.BcryptCost, deps.Log)
	occupancyService := service.NewOccupancyService(occupancyRepo, deps.Audit, deps.Log)
	calendarService := service.NewCalendarService(guestHouseRepo, occupancyRepo, deps.Log)
	userService := service.NewUserService(userRepo, deps.Audit, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	occupancyHandler := handler.NewOccupancyHandler(occupancyService, calendarService)
	guestHouseHandler := handler.NewGuestHouseHandler(guestHouseRepo)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	authMiddleware := middleware.Auth(deps.Cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)

	limiter := redisdb.NewLimiter(deps.Redis, deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Window)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup, middleware.RateLimit(limiter, "signup"))
	e.POST("/auth/login", authHandler.Login, middleware.RateLimit(limiter, "login"))
	e.GET("/auth/validate", authHandler.Validate)
	e.PUT("/auth/update-password", authHandler.UpdatePassword, authMiddleware)

	// --- Guest houses ---
	e.GET("/guesthouses", guestHouseHandler.List)
	e.POST("/guesthouses", guestHouseHandler.Create, authMiddleware, adminOnly)

	// --- Occupancies ---
	e.GET("/occupancies", occupancyHandler.List, authMiddleware)
	e.POST("/occupancies", occupancyHandler.Create, authMiddleware)
	e.GET("/occupancies/calendar", occupancyHandler.Calendar, authMiddleware)
	e.PUT("/occupancies/:id", occupancyHandler.Update, authMiddleware)
	e.DELETE("/occupancies/:id", occupancyHandler.Delete, authMiddleware)

	// --- Users ---
	e.GET("/users", userHandler.List, authMiddleware)
	e.PUT("/users/:id", userHandler.Update, authMiddleware)
	e.DELETE("/users/:id", userHandler.Delete, authMiddleware, adminOnly)

	// --- Audit trail ---
	e.GET("/logs", auditHandler.List, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
