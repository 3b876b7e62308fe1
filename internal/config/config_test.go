package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.AppName != "social-network" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "social-network")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.APIServer.Port != "8081" {
		t.Errorf("APIServer.Port = %q, want %q", cfg.APIServer.Port, "8081")
	}
	if cfg.APIServer.ReadTimeout != 30*time.Second {
		t.Errorf("APIServer.ReadTimeout = %v, want 30s", cfg.APIServer.ReadTimeout)
	}
	if cfg.Database.Type != "postgres" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "postgres")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Auth.JWTExpiry != 15*time.Minute {
		t.Errorf("Auth.JWTExpiry = %v, want 15m", cfg.Auth.JWTExpiry)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	os.Setenv("DATABASE_TYPE", "memory")
	os.Setenv("API_SERVER_PORT", "9090")
	defer func() {
		os.Unsetenv("DATABASE_TYPE")
		os.Unsetenv("API_SERVER_PORT")
	}()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Database.Type != "memory" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "memory")
	}
	if cfg.APIServer.Port != "9090" {
		t.Errorf("APIServer.Port = %q, want %q", cfg.APIServer.Port, "9090")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
APP_NAME: test-network
DATABASE:
  TYPE: file
  USERS_FILE: /tmp/users.txt
  FRIENDSHIPS_FILE: /tmp/friendships.txt
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(%q) error = %v", path, err)
	}

	if cfg.AppName != "test-network" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "test-network")
	}
	if cfg.Database.Type != "file" {
		t.Errorf("Database.Type = %q, want %q", cfg.Database.Type, "file")
	}
	if cfg.Database.UsersFile != "/tmp/users.txt" {
		t.Errorf("Database.UsersFile = %q, want %q", cfg.Database.UsersFile, "/tmp/users.txt")
	}
	// Untouched keys keep their defaults.
	if cfg.APIServer.Port != "8081" {
		t.Errorf("APIServer.Port = %q, want default %q", cfg.APIServer.Port, "8081")
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig("/does/not/exist/config.yaml")
	if err == nil {
		t.Error("LoadConfig() expected error for missing explicit config file, got nil")
	}
}
