package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-relay-api/internal/config"
	mock "chat-relay-api/internal/testutil"
	"chat-relay-api/pkg/lambda"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8080",
		Log:         config.LogConfig{Level: "info", Format: "text"},
		Generation: config.GenerationConfig{
			BaseURL:     baseURL,
			ServiceName: "FastAPI",
		},
		RateLimit: config.RateLimitConfig{Burst: 1},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	container, err := NewContainer(testConfig("http://localhost:8000"), logger)
	require.NoError(t, err)

	assert.NotNil(t, container.GenerationService)
	assert.NotNil(t, container.ChatHandler)
	assert.NotNil(t, container.Metrics)

	routerConfig := container.RouterConfig()
	assert.Same(t, container.ChatHandler, routerConfig.ChatHandler)
	assert.Equal(t, 1, routerConfig.RateBurst)
}

func TestNewContainerWithoutURL(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	_, err := NewContainer(testConfig(""), logger)
	assert.Error(t, err)
}

func TestNewContainerDefaultLogger(t *testing.T) {
	container, err := NewContainer(testConfig("http://localhost:8000"), nil)
	require.NoError(t, err)
	assert.NotNil(t, container.Logger)
}

// TestContainerEndToEnd runs one Lambda event through the wired container
func TestContainerEndToEnd(t *testing.T) {
	server := mock.NewMockServer()
	defer server.Close()
	server.SetResponse("/generate", mock.MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"generated_text": "hi", "response_time": 1.2}`,
	})

	logger, hook := logtest.NewNullLogger()
	container, err := NewContainer(testConfig(server.URL()), logger)
	require.NoError(t, err)

	resp, err := lambda.Handle(container.ChatHandler.HandleChat)(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"message": "hello"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success": true, "response": "hi", "response_time": 1.2}`, resp.Body)

	entry := hook.AllEntries()[0]
	assert.Equal(t, "test", entry.Data["environment"])
	assert.Equal(t, "server", entry.Data["mode"])
}
