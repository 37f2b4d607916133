package handlers

import (
	"chat-relay-api/internal/metrics"
	"chat-relay-api/internal/models"
	"chat-relay-api/internal/services"
)

// errorKind classifies an error for logging and metrics
func errorKind(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	if _, ok := services.AsUpstreamHTTPError(err); ok {
		return metrics.OutcomeUpstreamHTTPError
	}

	switch {
	case models.IsValidationError(err):
		return metrics.OutcomeValidationError
	case models.IsParseError(err):
		return metrics.OutcomeParseError
	case services.IsNetworkError(err):
		return metrics.OutcomeNetworkError
	case services.IsProtocolError(err):
		return metrics.OutcomeProtocolError
	default:
		return metrics.OutcomeInternalError
	}
}
