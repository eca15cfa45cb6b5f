package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
	"github.com/macalbert/cdk-intro-workshop/internal/handlers"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Router *gin.Engine
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Container{
		Config: cfg,
		Router: handlers.NewRouter(cfg),
	}, nil
}
