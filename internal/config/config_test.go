package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	// Unset rather than empty so a .env file may still provide it
	t.Setenv("PORTFOLIO_API_URL", "")
	os.Unsetenv("PORTFOLIO_API_URL")

	// Keep a stray .env in the real working directory out of the test
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("Expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %s", cfg.Timeout)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Expected 5m cache TTL, got %s", cfg.Cache.TTL)
	}
	if cfg.ConfigDir != filepath.Join(dir, "portfolio") {
		t.Errorf("Expected config dir under XDG_CONFIG_HOME, got %s", cfg.ConfigDir)
	}
	if cfg.LogFile() != filepath.Join(dir, "portfolio", "debug.log") {
		t.Errorf("Unexpected log file %s", cfg.LogFile())
	}
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("PORTFOLIO_API_URL", "https://api.example.com/api")
	t.Setenv("PORTFOLIO_TIMEOUT", "5s")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "debug")

	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != "https://api.example.com/api" {
		t.Errorf("Expected env API URL, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug log level, got %s", cfg.Log.Level)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORTFOLIO_API_URL=https://dotenv.example.com/api\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PORTFOLIO_API_URL") })

	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != "https://dotenv.example.com/api" {
		t.Errorf("Expected .env API URL, got %s", cfg.APIURL)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := "api_url: https://file.example.com/api\ncache:\n  ttl: 1m\noutput:\n  color: never\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != "https://file.example.com/api" {
		t.Errorf("Expected file API URL, got %s", cfg.APIURL)
	}
	if cfg.Cache.TTL != time.Minute {
		t.Errorf("Expected 1m cache TTL, got %s", cfg.Cache.TTL)
	}
	if cfg.Output.Color != "never" {
		t.Errorf("Expected color never, got %s", cfg.Output.Color)
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(nil, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PORTFOLIO_API_URL", "https://env.example.com/api")

	v := viper.New()
	v.Set("api_url", "https://flag.example.com/api")

	cfg, err := Load(v, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.APIURL != "https://flag.example.com/api" {
		t.Errorf("Expected flag API URL, got %s", cfg.APIURL)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"relative url", map[string]string{"PORTFOLIO_API_URL": "localhost:8080"}},
		{"bad scheme", map[string]string{"PORTFOLIO_API_URL": "ftp://example.com"}},
		{"zero timeout", map[string]string{"PORTFOLIO_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(nil, ""); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
