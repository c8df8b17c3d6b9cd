package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/webstack/auth-system/internal/api/handler"
	"github.com/webstack/auth-system/internal/api/middleware"
	"github.com/webstack/auth-system/internal/api/sessioncookie"
	"github.com/webstack/auth-system/internal/api/view"
	"github.com/webstack/auth-system/internal/core/service"
	"github.com/webstack/auth-system/internal/infrastructure/config"
	mongodb "github.com/webstack/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/webstack/auth-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)

	registry := service.NewRegistry(
		service.NewLocalStrategy(userRepo, hasher, log),
	)
	strategy, err := registry.Get(service.StrategyLocal)
	if err != nil {
		return nil, fmt.Errorf("select auth strategy: %w", err)
	}

	registrar := service.NewRegistrationService(userRepo, hasher)
	sessions := service.NewSessionManager(sessionStore, userRepo, cfg.SessionTTL, log)
	cookies := sessioncookie.NewCodec(cfg.SessionSecret, cfg.IsProduction())

	e.Use(middleware.Session(sessions, cookies))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(strategy, registrar, sessions, cookies)
	e.GET("/", authHandler.Home)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// --- Static assets (embedded) ---
	e.StaticFS("/static", view.Static())

	// --- Ops surface ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
