package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
	"github.com/macalbert/cdk-intro-workshop/internal/middleware"
)

// SetupRoutes configures the workshop routes and documentation
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	workshopHandler := NewWorkshopHandler(cfg.Service)

	router.GET("/", workshopHandler.Root)
	router.GET("/health", workshopHandler.Health)
	router.GET("/info", workshopHandler.Info)

	echo := []gin.HandlerFunc{workshopHandler.Echo}
	if cfg.GuardEnabled() {
		guard := middleware.Guard(middleware.NewAuthService(cfg.Auth))
		echo = append([]gin.HandlerFunc{guard}, echo...)
	}
	router.POST("/echo", echo...)

	SetupDocs(router, cfg.Docs)
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(cfg.Limits.MaxBodyBytes))

	if cfg.Limits.RateLimitRPS > 0 {
		router.Use(middleware.RateLimiter(cfg.Limits.RateLimitRPS, cfg.Limits.RateLimitBurst))
	}

	router.Use(middleware.StructuredLogger(logrus.StandardLogger()))
	router.Use(middleware.ErrorHandler())
}

// NewRouter builds a fully configured gin engine
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	// Wrong method on a known path is 405, not 404
	router.HandleMethodNotAllowed = true

	SetupMiddleware(router, cfg)
	SetupRoutes(router, cfg)
	return router
}
