package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Query.URL != "http://localhost:8001" {
		t.Errorf("Expected query URL 'http://localhost:8001', got %q", cfg.Query.URL)
	}

	if cfg.Query.RequestTimeoutSeconds != 0 {
		t.Errorf("Expected no request timeout by default, got %d", cfg.Query.RequestTimeoutSeconds)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got %q", cfg.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestLoad_CreateDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".tripplanner", "config.json")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Query.URL != DefaultQueryURL {
		t.Errorf("Expected default query URL, got %q", cfg.Query.URL)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	initialCfg := Default()
	initialCfg.Query.URL = "https://agent.example.com"
	initialCfg.Query.RequestTimeoutSeconds = 45
	if err := Save(configPath, initialCfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Query.URL != "https://agent.example.com" {
		t.Errorf("Expected saved URL, got %q", cfg.Query.URL)
	}
	if cfg.Query.RequestTimeoutSeconds != 45 {
		t.Errorf("Expected timeout 45, got %d", cfg.Query.RequestTimeoutSeconds)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"log_level":"debug"}`), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.Query.URL != DefaultQueryURL {
		t.Errorf("Expected default URL to survive, got %q", cfg.Query.URL)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected default log format, got %q", cfg.LogFormat)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{not json`), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(envQueryURL, "https://override.example.com")
	t.Setenv(envRequestTimeout, "12")
	t.Setenv(envLogLevel, "DEBUG")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Query.URL != "https://override.example.com" {
		t.Errorf("Expected env URL, got %q", cfg.Query.URL)
	}
	if cfg.Query.RequestTimeoutSeconds != 12 {
		t.Errorf("Expected env timeout 12, got %d", cfg.Query.RequestTimeoutSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected env log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)
	// Register cleanup for a variable godotenv will set.
	t.Setenv(envQueryURL, "")
	os.Unsetenv(envQueryURL)

	if err := os.WriteFile(filepath.Join(workDir, ".env"), []byte("TRIP_QUERY_URL=http://dotenv.local:9000\n"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Query.URL != "http://dotenv.local:9000" {
		t.Errorf("Expected .env URL, got %q", cfg.Query.URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty url", func(c *Config) { c.Query.URL = "" }, "query url is required"},
		{"no scheme", func(c *Config) { c.Query.URL = "localhost:8001" }, "absolute http(s)"},
		{"ftp", func(c *Config) { c.Query.URL = "ftp://host" }, "absolute http(s)"},
		{"negative timeout", func(c *Config) { c.Query.RequestTimeoutSeconds = -5 }, "request_timeout_seconds"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"text format", func(c *Config) { c.LogFormat = "text" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("Expected config.json, got %q", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".tripplanner" {
		t.Errorf("Expected .tripplanner directory, got %q", filepath.Dir(path))
	}
}
