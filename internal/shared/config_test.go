package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != DefaultBaseURL {
			t.Errorf("expected base URL %s, got %s", DefaultBaseURL, config.API.BaseURL)
		}

		if config.Storage.Path != "./moodshift.db" {
			t.Errorf("expected storage path ./moodshift.db, got %s", config.Storage.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.UI.Theme != "light" {
			t.Errorf("expected light theme, got %s", config.UI.Theme)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CallbackURL", func(t *testing.T) {
		config := DefaultConfig()
		if got := config.Server.CallbackURL(); got != "http://127.0.0.1:3000/callback" {
			t.Errorf("unexpected callback URL %s", got)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.Path != DefaultConfig().Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[api]
base_url = "http://localhost:8080/api/v1"
rate_limit = 2.5

[storage]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8081
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://localhost:8080/api/v1" {
			t.Errorf("unexpected base URL %s", config.API.BaseURL)
		}
		if config.API.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.API.RateLimit)
		}
		if config.Storage.Path != "/custom/path.db" {
			t.Errorf("expected storage path /custom/path.db, got %s", config.Storage.Path)
		}
		if config.Server.Port != 8081 {
			t.Errorf("expected server port 8081, got %d", config.Server.Port)
		}
		if config.UI.Theme != "light" {
			t.Errorf("expected missing ui section to keep default theme, got %s", config.UI.Theme)
		}
	})

	t.Run("LoadConfig Rejects Invalid Values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api]\nbase_url = \"ftp://nope\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Reports Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("SaveConfig Round Trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.UI.Theme = "dark"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.UI.Theme != "dark" {
			t.Errorf("expected dark theme after save, got %s", loaded.UI.Theme)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv(EnvAPIURL, "http://127.0.0.1:9000/api/v1/")
		t.Setenv(EnvDBPath, "/tmp/env.db")
		t.Setenv(EnvTheme, "dark")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.BaseURL != "http://127.0.0.1:9000/api/v1" {
			t.Errorf("expected env base URL without trailing slash, got %s", config.API.BaseURL)
		}
		if config.Storage.Path != "/tmp/env.db" {
			t.Errorf("expected env storage path, got %s", config.Storage.Path)
		}
		if config.UI.Theme != "dark" {
			t.Errorf("expected env theme, got %s", config.UI.Theme)
		}
	})
}
