package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// DetectServerless reads the Lambda runtime environment
func DetectServerless() ServerlessConfig {
	return ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// DeploymentMode returns the current deployment mode
func (c *Config) DeploymentMode() string {
	if c.Serverless.IsLambda {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment.
// CloudWatch ingests one JSON object per line, so Lambda always logs JSON.
func AdaptConfigForServerless(config *Config) *Config {
	if !config.Serverless.IsLambda {
		return config
	}

	config.Log.Format = "json"
	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config), nil
}

// NewLogger builds a logrus logger from the logging configuration
func NewLogger(config *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(config.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// LogFields returns the deployment fields attached to every log line
func (c *Config) LogFields() logrus.Fields {
	fields := logrus.Fields{
		"environment": c.Environment,
		"mode":        c.DeploymentMode(),
	}
	if c.Serverless.IsLambda {
		fields["function_name"] = c.Serverless.FunctionName
		fields["region"] = c.Serverless.Region
		fields["stage"] = c.Serverless.Stage
	}
	return fields
}
