package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDataURL is the published ImageNet structure file.
const DefaultDataURL = "https://s3.amazonaws.com/static.operam.com/assignment/structure_released.xml"

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	DataURL       string
	DataPath      string
	DataFormat    string
	StoreBackend  string
	DBPath        string
	APIPort       string
	LogLevel      slog.Level
	LogFormat     string
	IngestOnStart bool
	FetchTimeout  time.Duration
	FetchAttempts int
	DefaultLimit  int
	SearchLimit   int
	LargestLimit  int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and rejects values that do not parse.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root
	_ = godotenv.Load()

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
		DataURL:      getEnv("DATA_URL", DefaultDataURL),
		DataPath:     getEnv("DATA_PATH", ""),
		DataFormat:   getEnv("DATA_FORMAT", "xml"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
		DBPath:       getEnv("DB_PATH", "./data/taxonomy.db"),
		APIPort:      getEnv("API_PORT", "8081"),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.StoreBackend != BackendSQLite && cfg.StoreBackend != BackendMemory {
		return nil, fmt.Errorf("STORE_BACKEND must be %s or %s, got %q", BackendSQLite, BackendMemory, cfg.StoreBackend)
	}
	if cfg.DataFormat != "xml" && cfg.DataFormat != "records" {
		return nil, fmt.Errorf("DATA_FORMAT must be xml or records, got %q", cfg.DataFormat)
	}

	if cfg.IngestOnStart, err = getEnvBool("INGEST_ON_START", true); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getEnvDuration("FETCH_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.FetchAttempts, err = getEnvPositiveInt("FETCH_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.DefaultLimit, err = getEnvPositiveInt("DEFAULT_LIMIT", 50); err != nil {
		return nil, err
	}
	if cfg.SearchLimit, err = getEnvPositiveInt("SEARCH_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.LargestLimit, err = getEnvPositiveInt("LARGEST_LIMIT", 10); err != nil {
		return nil, err
	}

	if cfg.StoreBackend == BackendSQLite {
		// Create the database directory if it doesn't exist
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPositiveInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return d, nil
}
