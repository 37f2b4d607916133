package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"chat-relay-api/internal/config"
	"chat-relay-api/internal/metrics"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	GenerationService GenerationService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(cfg *config.Config, logger logrus.FieldLogger, m *metrics.Metrics, opts ...Option) (*ServiceContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if cfg.Generation.BaseURL == "" {
		return nil, fmt.Errorf("generation service URL is not configured")
	}

	opts = append([]Option{WithMetrics(m)}, opts...)

	return &ServiceContainer{
		GenerationService: NewGenerationService(cfg.Generation, logger, opts...),
	}, nil
}
