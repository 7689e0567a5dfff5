// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the handler.
type Config struct {
	Port     string
	LogLevel string

	TableServiceURL string
	TemplatesTable  string

	BlobServiceURL   string
	UploadsContainer string

	QueueServiceURL string
	PlanQueue       string

	CommunicationEndpoint string
	SenderEmail           string
	NotifyEmail           string
}

// Load reads a local .env file when present, then the process environment.
func Load() *Config {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("FUNCTIONS_CUSTOMHANDLER_PORT", "8080"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		TableServiceURL: os.Getenv("TABLE_SERVICE_URL"),
		TemplatesTable:  getEnv("TEMPLATES_TABLE", "goaltemplates"),

		BlobServiceURL:   os.Getenv("BLOB_SERVICE_URL"),
		UploadsContainer: getEnv("UPLOADS_CONTAINER", "savings-uploads"),

		QueueServiceURL: os.Getenv("QUEUE_SERVICE_URL"),
		PlanQueue:       getEnv("PLAN_QUEUE", "plan-queue"),

		CommunicationEndpoint: os.Getenv("COMMUNICATION_SERVICES_ENDPOINT"),
		SenderEmail:           os.Getenv("SENDER_EMAIL"),
		NotifyEmail:           os.Getenv("NOTIFY_EMAIL"),
	}
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

// TemplatesEnabled reports whether the goal template store is configured.
func (c *Config) TemplatesEnabled() bool {
	return c.TableServiceURL != ""
}

// BatchEnabled reports whether uploads and the plan queue are configured.
func (c *Config) BatchEnabled() bool {
	return c.BlobServiceURL != "" && c.QueueServiceURL != ""
}

// EmailEnabled reports whether plan summaries can be emailed.
func (c *Config) EmailEnabled() bool {
	return c.CommunicationEndpoint != "" && c.SenderEmail != "" && c.NotifyEmail != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
