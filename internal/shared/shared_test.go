package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewConfiguredLogger(t *testing.T) {
	t.Run("writes to the given writer at the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewConfiguredLogger(&buf, LogConfig{Level: "warn"})
		if err != nil {
			t.Fatalf("failed to create logger: %v", err)
		}

		logger.Info("hidden")
		logger.Warn("shown", "key", "value")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info message should be filtered at warn level: %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
			t.Errorf("expected warn message with fields, got %q", out)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewConfiguredLogger(nil, LogConfig{Level: "loud"})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("rotating file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "foodcodex.log")
		logger, err := NewConfiguredLogger(nil, LogConfig{Level: "info", File: logPath})
		if err != nil {
			t.Fatalf("failed to create logger: %v", err)
		}

		logger.Info("to file")

		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("log file should exist: %v", err)
		}
		if !strings.Contains(string(content), "to file") {
			t.Errorf("expected message in log file, got %q", content)
		}
	})
}

func TestNewRotatingWriter(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		w, err := NewRotatingWriter(LogConfig{File: filepath.Join(t.TempDir(), "a.log")})
		if err != nil {
			t.Fatalf("failed to create writer: %v", err)
		}
		if w.MaxSize != 10 || w.MaxBackups != 5 {
			t.Errorf("expected defaults 10/5, got %d/%d", w.MaxSize, w.MaxBackups)
		}
	})

	t.Run("requires a path", func(t *testing.T) {
		if _, err := NewRotatingWriter(LogConfig{}); err == nil {
			t.Error("expected error for empty path")
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	SetLogLevel(logger, log.DebugLevel)

	child := WithLogger(logger, "backend", "flat")
	child.Debug("ready")

	if !strings.Contains(buf.String(), "backend=flat") {
		t.Errorf("expected child fields in output, got %q", buf.String())
	}
}
