package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	LLMEndpoint  string
	LLMAPIKey    string
	LLMModel     string

	WeatherAPIKey   string
	WeatherEndpoint string

	ModelPath           string
	LabelsPath          string
	ONNXLibPath         string
	DiagnosisTimeout    time.Duration
	ConfidenceThreshold float64

	ReminderHour      int
	ScheduleRulesFile string

	SessionTTL     time.Duration
	CookieSecure   bool
	GoogleClientID string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisStream   string

	MQTTBroker   string
	MQTTClientID string
	MQTTTopic    string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the process environment. Values that still
// carry a "YOUR_..." placeholder are treated as unset.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	secret := func(k string) string {
		v := get(k, "")
		if strings.Contains(strings.ToUpper(v), "YOUR_") {
			return ""
		}
		return v
	}

	var errs []error
	getInt := func(k string, def int) int {
		v := get(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			return def
		}
		return n
	}
	getFloat := func(k string, def float64) float64 {
		v := get(k, "")
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			return def
		}
		return f
	}
	getDuration := func(k string, def time.Duration) time.Duration {
		v := get(k, "")
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			return def
		}
		return d
	}

	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		Timezone: get("TZ", "Asia/Kolkata"),

		DBDriver:    strings.ToLower(get("DB_DRIVER", "sqlite")),
		DBPath:      get("DB_PATH", "krishi.db"),
		DatabaseURL: get("DATABASE_URL", ""),

		LLMProvider:  strings.ToLower(get("LLM_PROVIDER", "gemini")),
		GeminiAPIKey: secret("GEMINI_API_KEY"),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMEndpoint:  get("LLM_ENDPOINT", ""),
		LLMAPIKey:    secret("LLM_API_KEY"),
		LLMModel:     get("LLM_MODEL", "gpt-4o-mini"),

		WeatherAPIKey:   secret("WEATHER_API_KEY"),
		WeatherEndpoint: get("WEATHER_ENDPOINT", "https://api.openweathermap.org"),

		ModelPath:           get("MODEL_PATH", "model/plant_disease.onnx"),
		LabelsPath:          get("LABELS_PATH", "model/labels.txt"),
		ONNXLibPath:         get("ONNX_LIB_PATH", ""),
		DiagnosisTimeout:    getDuration("DIAGNOSIS_TIMEOUT", 5*time.Second),
		ConfidenceThreshold: getFloat("CONFIDENCE_THRESHOLD", 0.5),

		ReminderHour:      getInt("REMINDER_HOUR", 8),
		ScheduleRulesFile: get("SCHEDULE_RULES_FILE", ""),

		SessionTTL:     getDuration("SESSION_TTL", 30*24*time.Hour),
		CookieSecure:   get("COOKIE_SECURE", "false") == "true",
		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),

		RedisAddr:     get("REDIS_ADDR", ""),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		RedisStream:   get("REDIS_STREAM", "krishi:reminders"),

		MQTTBroker:   get("MQTT_BROKER", ""),
		MQTTClientID: get("MQTT_CLIENT_ID", "krishi-reminders"),
		MQTTTopic:    get("MQTT_TOPIC", "krishi/reminders"),

		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "json"),
	}

	if cfg.ReminderHour < 0 || cfg.ReminderHour > 23 {
		errs = append(errs, fmt.Errorf("REMINDER_HOUR: %d is not an hour of the day", cfg.ReminderHour))
	}
	if cfg.DiagnosisTimeout <= 0 {
		errs = append(errs, errors.New("DIAGNOSIS_TIMEOUT: must be positive"))
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TZ: %w", err))
	}
	return cfg, errors.Join(errs...)
}

// Location is the zone that decides what "today" means for reminders.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LLMConfigured reports whether the selected provider has credentials.
func (c AppConfig) LLMConfigured() bool {
	switch c.LLMProvider {
	case "openai":
		return c.LLMEndpoint != "" && c.LLMAPIKey != ""
	default:
		return c.GeminiAPIKey != ""
	}
}

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	c.GeminiAPIKey = mask(c.GeminiAPIKey)
	c.LLMAPIKey = mask(c.LLMAPIKey)
	c.WeatherAPIKey = mask(c.WeatherAPIKey)
	c.RedisPassword = mask(c.RedisPassword)
	c.DatabaseURL = mask(c.DatabaseURL)
	return c
}
