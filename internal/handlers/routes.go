package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"chat-relay-api/internal/metrics"
	"chat-relay-api/internal/middleware"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	ChatHandler *ChatHandler
	Metrics     *metrics.Metrics
	Logger      logrus.FieldLogger
	RateLimit   float64
	RateBurst   int
}

// SetupRoutes configures all routes of the local server
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	router.Use(middleware.Recovery(config.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(config.Logger))
	router.Use(middleware.CORSPreflight())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "chat-relay-api",
			"version":   Version,
			"timestamp": time.Now().UTC(),
		})
	})

	if config.Metrics != nil {
		router.GET("/metrics", gin.WrapH(config.Metrics.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimiter(config.Logger, config.RateLimit, config.RateBurst))
	v1.Use(middleware.BearerClaims(config.Logger))
	{
		v1.POST("/chat", config.ChatHandler.Chat)
	}
}
