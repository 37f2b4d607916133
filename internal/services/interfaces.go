package services

import (
	"context"

	"chat-relay-api/internal/models"
)

// GenerationService defines the interface for calling the downstream
// text-generation service
type GenerationService interface {
	// Generate sends one payload and returns the decoded result. Failures are
	// reported as *UpstreamHTTPError, *NetworkError or *ProtocolError.
	Generate(ctx context.Context, payload *models.OutboundPayload) (*models.DownstreamResult, error)
}
