package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chat-relay-api/internal/metrics"
	"chat-relay-api/internal/middleware"
	"chat-relay-api/internal/models"
	"chat-relay-api/internal/services"
	"chat-relay-api/pkg/lambda"
)

// ChatHandler forwards chat requests to the generation service
type ChatHandler struct {
	generation services.GenerationService
	logger     logrus.FieldLogger
	metrics    *metrics.Metrics
}

// NewChatHandler creates a new chat handler
func NewChatHandler(generation services.GenerationService, logger logrus.FieldLogger, m *metrics.Metrics) *ChatHandler {
	return &ChatHandler{
		generation: generation,
		logger:     logger,
		metrics:    m,
	}
}

// HandleChat runs one invocation. It never fails: every error is mapped to
// an envelope.
func (h *ChatHandler) HandleChat(ctx context.Context, req *lambda.Request) *lambda.Response {
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	log := h.logger.WithField("request_id", requestID)

	log.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.Path,
		"body":   string(req.Body),
	}).Info("Received event")

	if identity := req.CallerIdentity(); identity != "" {
		log.WithField("user", identity).Info("Authenticated user")
	}

	genReq, err := models.ParseGenerationRequest(req.Body)
	if err != nil {
		return h.fail(log, err)
	}

	result, err := h.generation.Generate(ctx, genReq.ToPayload())
	if err != nil {
		return h.fail(log, err)
	}

	h.record(metrics.OutcomeSuccess)
	return successResponse(*result.GeneratedText, result.ResponseTimeOrNull())
}

func (h *ChatHandler) fail(log logrus.FieldLogger, err error) *lambda.Response {
	kind := errorKind(err)
	h.record(kind)

	if upstreamErr, ok := services.AsUpstreamHTTPError(err); ok {
		log.WithFields(logrus.Fields{
			"error_kind":  kind,
			"status_code": upstreamErr.StatusCode,
			"reason":      upstreamErr.Reason,
		}).Error("HTTP error from generation service")
		return upstreamErrorResponse(upstreamErr)
	}

	log.WithFields(logrus.Fields{
		"error_kind": kind,
		"error":      err.Error(),
	}).Error("Error handling chat request")
	return genericErrorResponse(err)
}

func (h *ChatHandler) record(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordInvocation(outcome)
	}
}

// @Summary Generate a chat reply
// @Description Forward a chat message to the generation service
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.GenerationRequest true "Chat message and generation parameters"
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeResponse(c, genericErrorResponse(err))
		return
	}

	req := &lambda.Request{
		RequestID:   c.GetString(middleware.RequestIDKey),
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     flattenHeaders(c.Request.Header),
		QueryParams: flattenHeaders(c.Request.URL.Query()),
		Body:        body,
	}
	if claims, ok := c.Get(middleware.ClaimsKey); ok {
		req.Claims, _ = claims.(map[string]interface{})
	}

	writeResponse(c, h.HandleChat(c.Request.Context(), req))
}

// writeResponse copies an envelope verbatim onto the gin response
func writeResponse(c *gin.Context, resp *lambda.Response) {
	for key, value := range resp.Headers {
		c.Header(key, value)
	}
	contentType := resp.Headers["Content-Type"]
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

func flattenHeaders(values map[string][]string) map[string]string {
	flat := make(map[string]string, len(values))
	for key, vs := range values {
		if len(vs) > 0 {
			flat[key] = vs[0]
		}
	}
	return flat
}
