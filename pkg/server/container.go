package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"chat-relay-api/internal/config"
	"chat-relay-api/internal/handlers"
	"chat-relay-api/internal/metrics"
	"chat-relay-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *logrus.Logger
	Metrics           *metrics.Metrics
	GenerationService services.GenerationService
	ChatHandler       *handlers.ChatHandler
}

// NewContainer creates a new dependency injection container. Service options
// are passed through to the generation service.
func NewContainer(cfg *config.Config, logger *logrus.Logger, opts ...services.Option) (*Container, error) {
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	m := metrics.New()
	baseLogger := logger.WithFields(cfg.LogFields())

	serviceContainer, err := services.NewServiceContainer(cfg, baseLogger, m, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:            cfg,
		Logger:            logger,
		Metrics:           m,
		GenerationService: serviceContainer.GenerationService,
		ChatHandler:       handlers.NewChatHandler(serviceContainer.GenerationService, baseLogger, m),
	}, nil
}

// RouterConfig returns the route configuration for the local server
func (c *Container) RouterConfig() *handlers.RouterConfig {
	return &handlers.RouterConfig{
		ChatHandler: c.ChatHandler,
		Metrics:     c.Metrics,
		Logger:      c.Logger.WithFields(c.Config.LogFields()),
		RateLimit:   c.Config.RateLimit.RequestsPerSecond,
		RateBurst:   c.Config.RateLimit.Burst,
	}
}
