package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diogo/blarrychat/internal/models"
)

// withTempHome points the config directory at a fresh temp dir
func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvUserID, "")
	t.Setenv(EnvLogLevel, "")
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint != models.DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, models.DefaultEndpoint)
	}
	if cfg.UserID != "localuser" {
		t.Errorf("UserID = %q, want localuser", cfg.UserID)
	}
	if cfg.SerialSends {
		t.Error("SerialSends should default to false")
	}
	if cfg.ErrorEntries {
		t.Error("ErrorEntries should default to false")
	}
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want no timeout by default", cfg.Timeout())
	}
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{0, 0},
		{-3, 0},
		{45, 45 * time.Second},
	}

	for _, tt := range tests {
		if got := (Config{TimeoutSeconds: tt.seconds}).Timeout(); got != tt.want {
			t.Errorf("Timeout() with %d = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	withTempHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	home := withTempHome(t)

	cfg := DefaultConfig()
	cfg.Endpoint = "http://blarry.local:8080"
	cfg.SerialSends = true
	cfg.Labels.Local = "Você"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	path := filepath.Join(home, ".blarrychat", "config.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadConfig_FillsEmptyFields(t *testing.T) {
	home := withTempHome(t)

	dir := filepath.Join(home, ".blarrychat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(map[string]any{"endpoint": "", "verbose": true})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Endpoint != models.DefaultEndpoint {
		t.Errorf("Endpoint = %q, want default", cfg.Endpoint)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be loaded from file")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	home := withTempHome(t)

	dir := filepath.Join(home, ".blarrychat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Error("expected defaults on parse error")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	withTempHome(t)
	t.Setenv(EnvEndpoint, "http://10.0.0.2:5000")
	t.Setenv(EnvUserID, "tester")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.Endpoint != "http://10.0.0.2:5000" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.UserID != "tester" {
		t.Errorf("UserID = %q", cfg.UserID)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadFileConfig_IgnoresEnv(t *testing.T) {
	withTempHome(t)
	t.Setenv(EnvEndpoint, "http://10.0.0.2:5000")

	cfg, err := LoadFileConfig()
	if err != nil {
		t.Fatalf("LoadFileConfig() returned error: %v", err)
	}
	if cfg.Endpoint != models.DefaultEndpoint {
		t.Errorf("Endpoint = %q, want file value %q", cfg.Endpoint, models.DefaultEndpoint)
	}
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(Config) bool
	}{
		{"endpoint", "http://h:1", false, func(c Config) bool { return c.Endpoint == "http://h:1" }},
		{"endpoint", "HTTPS://h:1", false, func(c Config) bool { return c.Endpoint == "HTTPS://h:1" }},
		{"endpoint", "h:1", true, nil},
		{"endpoint", "ftp://h:1", true, nil},
		{"user_id", "bob", false, func(c Config) bool { return c.UserID == "bob" }},
		{"user_id", "  ", true, nil},
		{"timeout_seconds", "5", false, func(c Config) bool { return c.TimeoutSeconds == 5 }},
		{"timeout_seconds", "-1", true, nil},
		{"serial_sends", "true", false, func(c Config) bool { return c.SerialSends }},
		{"error_entries", "true", false, func(c Config) bool { return c.ErrorEntries }},
		{"verbose", "yes", true, nil},
		{"copy_to_clipboard", "1", false, func(c Config) bool { return c.CopyToClipboard }},
		{"labels.assistant", "Bot", false, func(c Config) bool { return c.Labels.Assistant == "Bot" }},
		{"nope", "x", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("Keys() returned nothing")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys() not sorted: %v", keys)
		}
	}
	if !strings.Contains(strings.Join(keys, ","), "endpoint") {
		t.Error("Keys() missing endpoint")
	}
}
