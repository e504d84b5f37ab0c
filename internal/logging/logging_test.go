package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diogo/blarrychat/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNewWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("endpoint", "/message").Msg("sent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "sent" || entry["endpoint"] != "/message" || entry["app"] != "blarrychat" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestNew_DisabledByDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	logger, closer, err := New(config.DefaultConfig())
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer closer.Close()

	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("expected disabled logger, got level %v", logger.GetLevel())
	}
	if _, err := os.Stat(filepath.Join(home, ".blarrychat", "blarrychat.log")); !os.IsNotExist(err) {
		t.Error("log file should not be created when logging is disabled")
	}
}

func TestNew_VerboseWritesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.DefaultConfig()
	cfg.Verbose = true

	logger, closer, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	logger.Debug().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".blarrychat", "blarrychat.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !bytes.Contains(data, []byte(`"message":"hello"`)) {
		t.Errorf("log file missing entry: %s", data)
	}
}
