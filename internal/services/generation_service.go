package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"chat-relay-api/internal/config"
	"chat-relay-api/internal/metrics"
	"chat-relay-api/internal/models"
)

// DefaultTimeout bounds one call to the generation service
const DefaultTimeout = 10 * time.Second

// generatePath is appended to the configured base URL
const generatePath = "/generate"

// HTTPGenerationService calls the generation service over HTTP. It holds no
// per-request state and is safe for concurrent use.
type HTTPGenerationService struct {
	baseURL     string
	serviceName string
	timeout     time.Duration
	client      *http.Client
	logger      logrus.FieldLogger
	metrics     *metrics.Metrics
}

// Option customizes an HTTPGenerationService
type Option func(*HTTPGenerationService)

// WithTimeout overrides the per-call timeout
func WithTimeout(timeout time.Duration) Option {
	return func(s *HTTPGenerationService) {
		s.timeout = timeout
	}
}

// WithMetrics records downstream latency on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *HTTPGenerationService) {
		s.metrics = m
	}
}

// NewGenerationService creates a new generation service client
func NewGenerationService(cfg config.GenerationConfig, logger logrus.FieldLogger, opts ...Option) *HTTPGenerationService {
	s := &HTTPGenerationService{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		serviceName: cfg.ServiceName,
		timeout:     DefaultTimeout,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	// One connection per call; nothing is pooled between invocations.
	s.client = &http.Client{
		Timeout: s.timeout,
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		},
	}

	return s
}

// URL returns the full endpoint the service posts to
func (s *HTTPGenerationService) URL() string {
	return s.baseURL + generatePath
}

// Generate posts the payload and decodes the downstream result
func (s *HTTPGenerationService) Generate(ctx context.Context, payload *models.OutboundPayload) (*models.DownstreamResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	url := s.URL()
	s.logger.WithFields(logrus.Fields{
		"url":     url,
		"payload": string(data),
	}).Infof("Calling %s endpoint", s.serviceName)

	// The caller's cancellation is not propagated; only the client timeout applies.
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	result, outcome, err := s.do(req)
	s.observe(outcome, time.Since(start))

	return result, err
}

func (s *HTTPGenerationService) do(req *http.Request) (*models.DownstreamResult, string, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, metrics.OutcomeNetworkError, &NetworkError{Service: s.serviceName, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, metrics.OutcomeUpstreamHTTPError, &UpstreamHTTPError{
			Service:    s.serviceName,
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, metrics.OutcomeNetworkError, &NetworkError{Service: s.serviceName, URL: req.URL.String(), Err: err}
	}

	s.logger.WithField("response_body", string(body)).Infof("%s response body", s.serviceName)

	var result models.DownstreamResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, metrics.OutcomeProtocolError, &ProtocolError{Service: s.serviceName, Err: err}
	}
	if result.GeneratedText == nil {
		return nil, metrics.OutcomeProtocolError, &ProtocolError{Service: s.serviceName, Err: ErrMissingGeneratedText}
	}

	return &result, metrics.OutcomeSuccess, nil
}

func (s *HTTPGenerationService) observe(outcome string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveDownstream(outcome, elapsed)
	}
}

// reasonPhrase extracts the reason from a status line such as "503 Service Unavailable"
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
