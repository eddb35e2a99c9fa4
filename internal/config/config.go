package config

import (
	"fmt"
	"os"

	"docintake/internal/logger"
)

type Config struct {
	// Azure OpenAI configuration. Classification and extraction run on
	// independent deployments (a small model is enough for classification).
	AzureOpenAIEndpoint  string
	AzureOpenAIKey       string
	AzureOpenAIVersion   string
	ClassifierDeployment string
	ExtractorDeployment  string

	// Google Document AI configuration
	GoogleProject    string
	GoogleLocation   string
	ProcessorID      string
	ProcessorVersion string

	// Blob storage configuration, one bucket per logical category
	DocumentsBucket string
	TextBucket      string
	QRBucket        string
	FieldsBucket    string
	CommentsBucket  string

	// Logging configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		AzureOpenAIEndpoint:  getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIKey:       getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIVersion:   getEnv("AZURE_OPENAI_VERSION", "2024-06-01"),
		ClassifierDeployment: getEnv("AZURE_OPENAI_CLASSIFIER_DEPLOYMENT", ""),
		ExtractorDeployment:  getEnv("AZURE_OPENAI_EXTRACTOR_DEPLOYMENT", ""),
		GoogleProject:        getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleLocation:       getEnv("GOOGLE_CLOUD_LOCATION", "eu"),
		ProcessorID:          getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		ProcessorVersion:     getEnv("DOCUMENT_AI_PROCESSOR_VERSION", ""),
		DocumentsBucket:      getEnv("DOCUMENTS_BUCKET", ""),
		TextBucket:           getEnv("TEXT_BUCKET", ""),
		QRBucket:             getEnv("QR_BUCKET", ""),
		FieldsBucket:         getEnv("FIELDS_BUCKET", ""),
		CommentsBucket:       getEnv("COMMENTS_BUCKET", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.AzureOpenAIEndpoint == "" {
		return fmt.Errorf("AZURE_OPENAI_ENDPOINT is required")
	}
	if c.AzureOpenAIKey == "" {
		return fmt.Errorf("AZURE_OPENAI_API_KEY is required")
	}
	if c.ClassifierDeployment == "" {
		return fmt.Errorf("AZURE_OPENAI_CLASSIFIER_DEPLOYMENT is required")
	}
	if c.ExtractorDeployment == "" {
		return fmt.Errorf("AZURE_OPENAI_EXTRACTOR_DEPLOYMENT is required")
	}
	if c.GoogleProject == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required")
	}
	if c.ProcessorID == "" {
		return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required")
	}
	return nil
}

// HasStorage reports whether blob storage is configured. Local CLI runs can
// operate without it; the HTTP API cannot.
func (c *Config) HasStorage() bool {
	return c.DocumentsBucket != ""
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
