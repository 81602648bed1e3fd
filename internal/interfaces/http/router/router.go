package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/investkaro/backend/internal/infrastructure/auth"
	"github.com/investkaro/backend/internal/infrastructure/config"
	"github.com/investkaro/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on the API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config bundles what the router needs beyond its handlers
type Config struct {
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	HTTP       config.HTTPConfig
	Logger     *zap.Logger
}

// New builds the gin engine with the full middleware chain and all
// registered handlers mounted under /api/v1. Login and refresh are the
// only unauthenticated API routes.
func New(cfg Config, registrars ...RouteRegistrar) *gin.Engine {
	if err := middleware.RegisterValidators(); err != nil && cfg.Logger != nil {
		cfg.Logger.Warn("Failed to register custom validators", zap.Error(err))
	}

	engine := gin.New()

	engine.Use(middleware.Recovery(cfg.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(cfg.Logger))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsCfg))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(middleware.JWTConfig{
		JWTService: cfg.JWTService,
		Blacklist:  cfg.Blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: cfg.Logger,
	}))

	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}

	return engine
}
