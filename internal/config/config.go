package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Backend origin, without the /api namespace
	BackendURL string

	// Persistent credential store
	CookieStorePath string

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Metrics configuration
	MetricsEnabled bool
	MetricsHost    string
	MetricsPort    int

	// Dashboard refresh interval for watch mode
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present; variables
// already set in the environment take precedence over it.
// It fails fast if required variables are missing or invalid.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		BackendURL:      strings.TrimRight(os.Getenv("BACKEND_URL"), "/"),
		CookieStorePath: getEnv("COOKIE_STORE_PATH", "./coachboard-session.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", false),
		MetricsHost:     getEnv("METRICS_HOST", "localhost"),
		MetricsPort:     getEnvInt("METRICS_PORT", 9464),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", time.Minute),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return errors.New("BACKEND_URL is required")
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("BACKEND_URL must be an absolute http(s) URL")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.New("LOG_FORMAT must be one of: text, json")
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return errors.New("METRICS_PORT must be between 1 and 65535")
	}

	if c.RefreshInterval <= 0 {
		return errors.New("REFRESH_INTERVAL must be a positive duration")
	}

	return nil
}

// MetricsAddr returns the listen address for the metrics server
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", c.MetricsHost, c.MetricsPort)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value.
// Unparseable values yield 0 so validation rejects them.
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvDuration parses a Go duration string. Invalid values yield 0 so
// validation rejects them.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0
	}

	return value
}
