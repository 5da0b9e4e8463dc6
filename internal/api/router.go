package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/classpoint/horarios-api/internal/api/handler"
	"github.com/classpoint/horarios-api/internal/api/middleware"
	"github.com/classpoint/horarios-api/internal/core/domain"
	"github.com/classpoint/horarios-api/internal/core/service"
	"github.com/classpoint/horarios-api/internal/infrastructure/config"
	mongodb "github.com/classpoint/horarios-api/internal/infrastructure/db/mongo"
	redisdb "github.com/classpoint/horarios-api/internal/infrastructure/db/redis"
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
	e.Use(echoprometheus.NewMiddleware("horarios"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	scheduleRepo := mongodb.NewScheduleRepository(db)
	revocations := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, revocations, cfg.JWTSecret, cfg.TokenTTL, cfg.RefreshTTL, cfg.SingleAdmin, log)
	scheduleService := service.NewScheduleService(scheduleRepo, log)
	userService := service.NewUserService(userRepo, scheduleRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMiddleware := middleware.Auth(cfg.JWTSecret, revocations)

	// --- Auth routes (no token required; logout reads its own header) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.GET("/horarios", scheduleHandler.List)
	v1.POST("/horarios", scheduleHandler.Create)
	v1.GET("/horarios/:id", scheduleHandler.Get)
	v1.PUT("/horarios/:id", scheduleHandler.Update)
	v1.DELETE("/horarios/:id", scheduleHandler.Delete)

	v1.GET("/me/horarios", scheduleHandler.ListMine)

	// User management. Listing is admin-only; Get/Update enforce
	// owner-or-admin in the service, Delete is admin-only there too.
	v1.GET("/users", userHandler.List, middleware.RequireRole(domain.RoleAdmin))
	v1.GET("/users/:id", userHandler.Get)
	v1.PUT("/users/:id", userHandler.Update)
	v1.DELETE("/users/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
