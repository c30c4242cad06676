package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level %s, got %s", LevelInfo, cfg.Level)
	}
	if cfg.Format != FormatText {
		t.Errorf("Expected default format %s, got %s", FormatText, cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("Expected default output 'stderr', got '%s'", cfg.Output)
	}
	if cfg.AddSource {
		t.Error("Expected AddSource to be false by default")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("stderr json logger", func(t *testing.T) {
		logger, err := New(Config{Level: LevelError, Format: FormatJSON, Output: "stderr"})
		if err != nil {
			t.Fatalf("Failed to create logger: %v", err)
		}
		if logger.OutputPath() != "" {
			t.Errorf("Stream logger should report no output path, got %q", logger.OutputPath())
		}
	})

	t.Run("file logger", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "merge.log")

		logger, err := New(Config{Level: LevelDebug, Format: FormatText, Output: logFile})
		if err != nil {
			t.Fatalf("Failed to create file logger: %v", err)
		}
		defer logger.Close()

		logger.Info("hello file")

		content, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "hello file") {
			t.Error("Log file should contain the message")
		}
		if logger.OutputPath() != logFile {
			t.Errorf("Expected output path %q, got %q", logFile, logger.OutputPath())
		}
	})

	t.Run("rotating file logger", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "rotate.log")

		logger, err := New(Config{
			Level:    LevelInfo,
			Format:   FormatJSON,
			Output:   logFile,
			Rotation: RotationConfig{Enabled: true, MaxSizeMB: 1, MaxBackups: 1},
		})
		if err != nil {
			t.Fatalf("Failed to create rotating logger: %v", err)
		}

		logger.Info("rotated entry", "count", 1)
		if err := logger.Close(); err != nil {
			t.Fatalf("Failed to close logger: %v", err)
		}

		content, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "rotated entry") {
			t.Error("Rotated log file should contain the message")
		}
	})

	t.Run("invalid directory for file logger", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatalf("Failed to create blocker file: %v", err)
		}

		_, err := New(Config{Level: LevelInfo, Format: FormatText, Output: filepath.Join(blocker, "test.log")})
		if err == nil {
			t.Error("Expected error for invalid log file path")
		}
	})
}

func TestLoggerWithMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: LevelDebug, Format: FormatJSON})

	logger.WithComponent("merger").WithRunID("run-1").Info("merged")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "merger" {
		t.Errorf("Expected component field, got %v", entry["component"])
	}
	if entry["run_id"] != "run-1" {
		t.Errorf("Expected run_id field, got %v", entry["run_id"])
	}

	if logger.WithError(fmt.Errorf("x")) == logger {
		t.Error("WithError should return a new logger instance")
	}
}

func TestSpecializedLoggingMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: LevelDebug, Format: FormatText})

	t.Run("InfoSource", func(t *testing.T) {
		logger.InfoSource("table parsed", "ports.xlsx", "rows", 3)
		output := buf.String()
		if !strings.Contains(output, "table parsed") || !strings.Contains(output, "ports.xlsx") {
			t.Errorf("Unexpected output: %s", output)
		}
	})

	t.Run("ErrorSource", func(t *testing.T) {
		logger.ErrorSource("merge failed", "scan2.xml", fmt.Errorf("unexpected EOF"))
		output := buf.String()
		if !strings.Contains(output, "level=ERROR") || !strings.Contains(output, "unexpected EOF") {
			t.Errorf("Unexpected output: %s", output)
		}
	})

	t.Run("WarnAddress", func(t *testing.T) {
		logger.WarnAddress("invalid address", "table", "999.1.1.1", "row", 4)
		output := buf.String()
		if !strings.Contains(output, "level=WARN") || !strings.Contains(output, "999.1.1.1") {
			t.Errorf("Unexpected output: %s", output)
		}
	})
}

func TestDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewWithWriter(&buf, Config{Level: LevelWarn}))

	Info("hidden")
	Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("Info should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("Warn should be logged")
	}
}
