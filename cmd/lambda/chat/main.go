package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"chat-relay-api/internal/config"
	"chat-relay-api/pkg/lambda"
	"chat-relay-api/pkg/server"
)

func main() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := config.NewLogger(cfg)

	container, err := server.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize container")
	}

	logger.WithFields(cfg.LogFields()).WithField("generation_url", cfg.Generation.BaseURL).Info("Chat relay function ready")

	awslambda.Start(lambda.Handle(container.ChatHandler.HandleChat))
}
