package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"FUNCTIONS_CUSTOMHANDLER_PORT", "LOG_LEVEL", "TABLE_SERVICE_URL", "TEMPLATES_TABLE",
		"BLOB_SERVICE_URL", "UPLOADS_CONTAINER", "QUEUE_SERVICE_URL", "PLAN_QUEUE",
		"COMMUNICATION_SERVICES_ENDPOINT", "SENDER_EMAIL", "NOTIFY_EMAIL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "goaltemplates", cfg.TemplatesTable)
	assert.Equal(t, "savings-uploads", cfg.UploadsContainer)
	assert.Equal(t, "plan-queue", cfg.PlanQueue)
	assert.False(t, cfg.TemplatesEnabled())
	assert.False(t, cfg.BatchEnabled())
	assert.False(t, cfg.EmailEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FUNCTIONS_CUSTOMHANDLER_PORT", "7071")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TABLE_SERVICE_URL", "http://127.0.0.1:10002/devstoreaccount1")
	t.Setenv("BLOB_SERVICE_URL", "http://127.0.0.1:10000/devstoreaccount1")
	t.Setenv("QUEUE_SERVICE_URL", "http://127.0.0.1:10001/devstoreaccount1")
	t.Setenv("COMMUNICATION_SERVICES_ENDPOINT", "https://acs.example.com")
	t.Setenv("SENDER_EMAIL", "noreply@example.com")
	t.Setenv("NOTIFY_EMAIL", "me@example.com")

	cfg := Load()

	assert.Equal(t, "7071", cfg.Port)
	assert.True(t, cfg.TemplatesEnabled())
	assert.True(t, cfg.BatchEnabled())
	assert.True(t, cfg.EmailEnabled())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestValidate_Errors(t *testing.T) {
	cfg := &Config{Port: "not-a-port", LogLevel: "info"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: "8080", LogLevel: "verbose"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: "70000", LogLevel: "info"}
	assert.Error(t, cfg.Validate())
}
