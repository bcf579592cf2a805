package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identitylab/user-api/internal/api/handler"
	"github.com/identitylab/user-api/internal/api/middleware"
	"github.com/identitylab/user-api/internal/core/domain"
	"github.com/identitylab/user-api/internal/core/service"
	"github.com/identitylab/user-api/internal/infrastructure/config"
	mongodb "github.com/identitylab/user-api/internal/infrastructure/db/mongo"
	redisdb "github.com/identitylab/user-api/internal/infrastructure/db/redis"
	"github.com/identitylab/user-api/internal/infrastructure/password"
	"github.com/identitylab/user-api/internal/infrastructure/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Role requirements are declared here, route by route, and enforced by the
// RequireRole guard before any handler runs.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	matcher := password.NewBcryptMatcher(cfg.BcryptCost)
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	userRepo := mongodb.NewUserRepository(db, matcher)
	userCache := redisdb.NewUserCache(rdb, cfg.Redis.CacheTTL)

	authService := service.NewAuthService(userRepo, matcher, issuer, log)
	userService := service.NewUserService(userRepo, matcher, userCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authenticate := middleware.Authenticate(issuer, userRepo)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Public auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)

	// --- User management ---
	users := e.Group("/users", authenticate)
	users.POST("", userHandler.CreateAdmin, adminOnly)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get, adminOnly)
	// Any authenticated role may attempt an update; the owner-or-admin rule
	// is applied against the path id inside the service.
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
