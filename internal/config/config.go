package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Server
	Port int    `validate:"min=1,max=65535"`
	Env  string `validate:"oneof=development production test"`

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// CORS
	AllowedOrigins []string

	// Upstream octofit REST API
	APIBaseURL  string `validate:"required,url"`
	StrictShape bool

	// HTTP server timeouts
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load loads configuration from environment variables.
// It returns an error if the API base URL cannot be determined or a value is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnvInt("PORT", 8080),
		Env:      getEnv("ENV", "development"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		StrictShape: getEnvBool("STRICT_SHAPE", false),

		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	baseURL, err := apiBaseURL()
	if err != nil {
		return nil, err
	}
	cfg.APIBaseURL = baseURL

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// apiBaseURL prefers API_BASE_URL and otherwise derives the Codespaces
// forwarded host of the API from CODESPACE_NAME.
func apiBaseURL() (string, error) {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		return strings.TrimRight(v, "/"), nil
	}
	if name := os.Getenv("CODESPACE_NAME"); name != "" {
		return fmt.Sprintf("https://%s-8000.app.github.dev", name), nil
	}
	return "", fmt.Errorf("missing required environment variable: API_BASE_URL or CODESPACE_NAME")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
