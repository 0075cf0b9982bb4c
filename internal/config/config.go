package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort  string
	DBPath   string
	LogLevel slog.Level
	// LogFormat is "text" or "json".
	LogFormat string

	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string
	LLMTimeout   time.Duration

	RateLimitWindow time.Duration
	RateLimitMax    int

	SiteBaseURL string
	WhatsAppURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	ContactTo    string
	ContactFrom  string
}

// ModelConfigured reports whether LLM credentials are present. Without them
// the agent answers with the fixed handoff reply instead of streaming.
func (c *Config) ModelConfigured() bool {
	return c.LLMAPIKey != ""
}

// MailConfigured reports whether SMTP settings are complete enough to send
// lead notifications.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.ContactTo != "" && c.ContactFrom != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the numeric ones.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:      getEnv("API_PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "./data/inmoportal.db"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		LLMBaseURL:   getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName: getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:    getEnv("LLM_API_KEY", ""),
		SiteBaseURL:  getEnv("SITE_BASE_URL", "https://www.inmoportal.cl"),
		WhatsAppURL:  getEnv("WHATSAPP_URL", "https://wa.me/56900000000"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		ContactTo:    getEnv("CONTACT_TO", ""),
		ContactFrom:  getEnv("CONTACT_FROM", ""),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	timeoutSecs, err := getEnvInt("LLM_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	cfg.LLMTimeout = time.Duration(timeoutSecs) * time.Second

	windowSecs, err := getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitWindow = time.Duration(windowSecs) * time.Second

	cfg.RateLimitMax, err = getEnvInt("RATE_LIMIT_MAX", 60)
	if err != nil {
		return nil, err
	}

	cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	// Create ./data directory if it doesn't exist (for future DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel maps a level name onto a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}
