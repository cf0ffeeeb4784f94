package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "TZ", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL",
	"LLM_ENDPOINT", "LLM_API_KEY", "LLM_MODEL", "WEATHER_API_KEY", "WEATHER_ENDPOINT", "MODEL_PATH",
	"LABELS_PATH", "ONNX_LIB_PATH", "DIAGNOSIS_TIMEOUT", "CONFIDENCE_THRESHOLD", "REMINDER_HOUR",
	"SCHEDULE_RULES_FILE", "SESSION_TTL", "COOKIE_SECURE", "GOOGLE_CLIENT_ID", "REDIS_ADDR",
	"REDIS_PASSWORD", "REDIS_DB", "REDIS_STREAM", "MQTT_BROKER", "MQTT_CLIENT_ID", "MQTT_TOPIC",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "krishi.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.DiagnosisTimeout)
	assert.Equal(t, 0.5, cfg.ConfidenceThreshold)
	assert.Equal(t, 8, cfg.ReminderHour)
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
	assert.False(t, cfg.LLMConfigured())
	assert.Empty(t, cfg.WeatherAPIKey)
}

func TestLoad_PlaceholderKeysCountAsMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "YOUR_GEMINI_API_KEY")
	t.Setenv("WEATHER_API_KEY", "YOUR_OPENWEATHERMAP_API_KEY")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Empty(t, cfg.WeatherAPIKey)
	assert.False(t, cfg.LLMConfigured())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_ENDPOINT", "http://llm.local")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("DIAGNOSIS_TIMEOUT", "2500ms")
	t.Setenv("REMINDER_HOUR", "6")
	t.Setenv("TZ", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.True(t, cfg.LLMConfigured())
	assert.Equal(t, 2500*time.Millisecond, cfg.DiagnosisTimeout)
	assert.Equal(t, 6, cfg.ReminderHour)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REMINDER_HOUR", "25")
	t.Setenv("DIAGNOSIS_TIMEOUT", "soon")
	t.Setenv("TZ", "Mars/Olympus")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "REMINDER_HOUR")
	assert.ErrorContains(t, err, "DIAGNOSIS_TIMEOUT")
	assert.ErrorContains(t, err, "TZ")
}

func TestRedacted(t *testing.T) {
	cfg := AppConfig{GeminiAPIKey: "secret", WeatherAPIKey: "w", Port: "9000"}
	r := cfg.Redacted()
	assert.Equal(t, "***", r.GeminiAPIKey)
	assert.Equal(t, "***", r.WeatherAPIKey)
	assert.Empty(t, r.LLMAPIKey)
	assert.Equal(t, "9000", r.Port)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
}
