// Package config handles configuration for blarrychat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diogo/blarrychat/internal/models"
)

// Environment variables that override the config file
const (
	EnvEndpoint = "BLARRY_ENDPOINT"
	EnvUserID   = "BLARRY_USER_ID"
	EnvLogLevel = "BLARRY_LOG_LEVEL"
)

// Labels configures the sender labels shown in the log
type Labels struct {
	Local     string `json:"local"`
	Assistant string `json:"assistant"`
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the base URL of the Blarry server; /message is appended.
	Endpoint string `json:"endpoint"`
	UserID   string `json:"user_id"`
	// TimeoutSeconds bounds each request. Zero, the default, means no timeout.
	TimeoutSeconds int `json:"timeout_seconds"`
	// SerialSends disables the send control while a reply is outstanding.
	SerialSends bool `json:"serial_sends"`
	// ErrorEntries renders failed sends in the log. Off, a failure leaves
	// only the local echo and a log line.
	ErrorEntries    bool   `json:"error_entries"`
	Verbose         bool   `json:"verbose"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	TUITheme        string `json:"tui_theme,omitempty"`
	MarkdownStyle   string `json:"markdown_style,omitempty"` // "dark", "light", "notty"
	Labels          Labels `json:"labels"`
	// LogLevel is not persisted; it comes from BLARRY_LOG_LEVEL.
	LogLevel string `json:"-"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:        models.DefaultEndpoint,
		UserID:          models.DefaultUserID,
		TimeoutSeconds:  0,
		SerialSends:     false,
		ErrorEntries:    false,
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		MarkdownStyle:   "dark",
		Labels: Labels{
			Local:     models.LabelLocal,
			Assistant: models.LabelAssistant,
		},
	}
}

// Timeout returns the per-request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".blarrychat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path to the log file
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "blarrychat.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg, err := LoadFileConfig()
	return cfg.ApplyEnv(), err
}

// LoadFileConfig loads the configuration from disk only. Commands that
// write the file back use it so environment overrides are not persisted.
func LoadFileConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg.fillDefaults(), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv returns a copy of cfg with environment overrides applied
func (c Config) ApplyEnv() Config {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvUserID); v != "" {
		c.UserID = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return c
}

// fillDefaults restores empty string fields a hand-edited file may have cleared
func (c Config) fillDefaults() Config {
	def := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	if c.UserID == "" {
		c.UserID = def.UserID
	}
	if c.Labels.Local == "" {
		c.Labels.Local = def.Labels.Local
	}
	if c.Labels.Assistant == "" {
		c.Labels.Assistant = def.Labels.Assistant
	}
	return c
}

// setters maps `config set` keys to their field updates
var setters = map[string]func(*Config, string) error{
	"endpoint": func(c *Config, v string) error {
		if !models.IsHTTPEndpoint(v) {
			return fmt.Errorf("endpoint must start with http:// or https://")
		}
		c.Endpoint = v
		return nil
	},
	"user_id": func(c *Config, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("user_id cannot be empty")
		}
		c.UserID = v
		return nil
	},
	"timeout_seconds": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout_seconds must be a non-negative integer")
		}
		c.TimeoutSeconds = n
		return nil
	},
	"serial_sends":      boolSetter(func(c *Config, b bool) { c.SerialSends = b }),
	"error_entries":     boolSetter(func(c *Config, b bool) { c.ErrorEntries = b }),
	"verbose":           boolSetter(func(c *Config, b bool) { c.Verbose = b }),
	"copy_to_clipboard": boolSetter(func(c *Config, b bool) { c.CopyToClipboard = b }),
	"tui_theme": func(c *Config, v string) error {
		c.TUITheme = v
		return nil
	},
	"markdown_style": func(c *Config, v string) error {
		c.MarkdownStyle = v
		return nil
	},
	"labels.local": func(c *Config, v string) error {
		c.Labels.Local = v
		return nil
	},
	"labels.assistant": func(c *Config, v string) error {
		c.Labels.Assistant = v
		return nil
	},
}

func boolSetter(apply func(*Config, bool)) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", v)
		}
		apply(c, b)
		return nil
	}
}

// Set updates a single field identified by its JSON key
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(c, value)
}

// Keys returns the keys accepted by Set, sorted
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
