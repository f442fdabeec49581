package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Scoreboard backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string

	ScoreboardBackend string
	ScoreboardPath    string
	SQLitePath        string
	DatabaseURL       string
	ScoreboardRecent  int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	CORSOrigin string
}

// Load reads configuration from the environment (and .env, if present) with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ScoreboardBackend: strings.ToLower(getEnv("SCOREBOARD_BACKEND", BackendFile)),
		ScoreboardPath:    getEnv("SCOREBOARD_PATH", "data/scoreboard.json"),
		SQLitePath:        getEnv("SQLITE_PATH", "data/scoreboard.db"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "*"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.ScoreboardRecent, err = getEnvInt("SCOREBOARD_RECENT", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitRequests, err = getEnvInt("RATE_LIMIT_REQUESTS", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", time.Second); err != nil {
		return nil, err
	}

	switch cfg.ScoreboardBackend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s scoreboard", BackendPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported scoreboard backend: %s", cfg.ScoreboardBackend)
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}
