package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultQueryURL = "http://localhost:8001"

	envQueryURL       = "TRIP_QUERY_URL"
	envRequestTimeout = "TRIP_REQUEST_TIMEOUT_SECONDS"
	envLogLevel       = "TRIP_LOG_LEVEL"
)

// Config represents the application configuration
type Config struct {
	Query     QueryConfig `json:"query"`
	LogLevel  string      `json:"log_level"`
	LogFormat string      `json:"log_format"`
	LogFile   string      `json:"log_file"`
}

// QueryConfig holds the query endpoint settings
type QueryConfig struct {
	URL string `json:"url"`
	// 0 disables the timeout.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Query: QueryConfig{
			URL:                   DefaultQueryURL,
			RequestTimeoutSeconds: 0,
		},
		LogLevel:  "info",
		LogFormat: "json",
		LogFile:   "",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Environment variables (including those from a .env file in the working
// directory) override file values.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg, err := readOrCreate(configPath)
	if err != nil {
		return Config{}, err
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	return applyEnvironmentOverrides(cfg), nil
}

func readOrCreate(configPath string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Start from defaults so fields missing from older files keep sane values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func applyEnvironmentOverrides(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(envQueryURL)); v != "" {
		cfg.Query.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(envRequestTimeout)); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Query.RequestTimeoutSeconds = secs
		}
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	raw := strings.TrimSpace(c.Query.URL)
	if raw == "" {
		return fmt.Errorf("query url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid query url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("query url must be an absolute http(s) url, got: %s", raw)
	}

	if c.Query.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative, got: %d", c.Query.RequestTimeoutSeconds)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level: %s", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("log_format must be json or text, got: %s", c.LogFormat)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tripplanner", "config.json")
	}
	return filepath.Join(homeDir, ".tripplanner", "config.json")
}
