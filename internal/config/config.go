package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the gateway configuration.
type Config struct {
	ListenPort      int
	UpstreamScheme  string
	UpstreamHost    string
	UpstreamTimeout time.Duration // 0 means no timeout on forwarded calls
	DatabasePath    string
	AllowedOrigins  []string
	Processor       ProcessorConfig
}

// ProcessorConfig holds configuration for the background incident processor.
type ProcessorConfig struct {
	Enabled         bool
	CheckSchedule   string
	ResolveSchedule string
	Email           string
	Password        string
	ResolveAfter    time.Duration
}

// UpstreamBase returns the base URL requests are forwarded to.
func (c *Config) UpstreamBase() string {
	return c.UpstreamScheme + "://" + c.UpstreamHost
}

// Load loads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("LISTEN_PORT", "3000"))
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "0s"))
	if err != nil {
		return nil, err
	}

	resolveAfterDays, err := strconv.Atoi(getEnv("RESOLVE_AFTER_DAYS", "21"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ListenPort:      port,
		UpstreamScheme:  getEnv("UPSTREAM_SCHEME", "https"),
		UpstreamHost:    getEnv("UPSTREAM_HOST", "com668-backend:5000"),
		UpstreamTimeout: timeout,
		DatabasePath:    getEnv("DATABASE_PATH", "./aims.db"),
		AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		Processor: ProcessorConfig{
			Enabled:         getEnv("PROCESSOR_ENABLED", "false") == "true",
			CheckSchedule:   getEnv("PROCESSOR_CHECK_SCHEDULE", "@every 30s"),
			ResolveSchedule: getEnv("PROCESSOR_RESOLVE_SCHEDULE", "@every 60s"),
			Email:           getEnv("PROCESSOR_EMAIL", ""),
			Password:        getEnv("PROCESSOR_PASSWORD", ""),
			ResolveAfter:    time.Duration(resolveAfterDays) * 24 * time.Hour,
		},
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
