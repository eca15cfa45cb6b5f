package lambda

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/macalbert/cdk-intro-workshop/internal/config"
	"github.com/macalbert/cdk-intro-workshop/internal/logging"
	"github.com/macalbert/cdk-intro-workshop/pkg/server"
)

// ConfigLoader produces the configuration for a cold start
type ConfigLoader func() (*config.Config, error)

// ConnectionManager builds the application once per execution environment
// and reuses it across warm invocations
type ConnectionManager struct {
	mu          sync.RWMutex
	loader      ConfigLoader
	setupLogger func(config.LogConfig) error
	container   *server.Container
	adapter     *Adapter
}

// NewConnectionManager creates a manager using loader for configuration
func NewConnectionManager(loader ConfigLoader) *ConnectionManager {
	if loader == nil {
		loader = config.GetLambdaConfig
	}
	return &ConnectionManager{
		loader:      loader,
		setupLogger: logging.Setup,
	}
}

// Initialize builds the container and adapter if not already built, then
// applies the configured logger. A failed attempt is not cached so the next
// invocation tries again.
func (cm *ConnectionManager) Initialize() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.adapter != nil {
		return nil
	}

	cfg, err := cm.loader()
	if err != nil {
		return err
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		return err
	}

	if err := cm.setupLogger(cfg.Log); err != nil {
		logrus.WithError(err).Warn("Failed to configure logger")
	}

	cm.container = container
	cm.adapter = NewAdapter(container.Router, WithBasePath(cfg.Lambda.BasePath))

	logging.WithService(logrus.StandardLogger()).WithFields(logrus.Fields{
		"deployment_type":   cfg.Service.DeploymentType,
		"image_type":        cfg.Service.ImageType,
		"runtime_interface": cfg.Service.RuntimeInterface,
		"base_path":         cfg.Lambda.BasePath,
	}).Info("Lambda application initialized")
	return nil
}

// GetAdapter returns the adapter, initializing if necessary
func (cm *ConnectionManager) GetAdapter() (*Adapter, error) {
	cm.mu.RLock()
	adapter := cm.adapter
	cm.mu.RUnlock()
	if adapter != nil {
		return adapter, nil
	}

	if err := cm.Initialize(); err != nil {
		return nil, err
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.adapter, nil
}

// Container returns the built container or nil before initialization
func (cm *ConnectionManager) Container() *server.Container {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.container
}

// Handle serves one invocation
func (cm *ConnectionManager) Handle(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	adapter, err := cm.GetAdapter()
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize lambda application")
		return nil, err
	}
	return adapter.Handle(ctx, payload)
}
