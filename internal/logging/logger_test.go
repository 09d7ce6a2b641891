package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/unfence/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
		{"case insensitive Info", "Info", log.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			if logger == nil {
				t.Fatal("New returned nil logger")
			}

			if logger.GetLevel() != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, logger.GetLevel())
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	logger := logging.Default()
	if logger == nil {
		t.Fatal("Default returned nil logger")
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.

	// Save original and restore after test.
	original := logging.Default()
	defer logging.SetDefault(original)

	// Create a fresh logger for testing.
	testLogger := logging.New("info")
	logging.SetDefault(testLogger)

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}

	logging.SetLevel("error")
	if logging.Default().GetLevel() != log.ErrorLevel {
		t.Error("SetLevel to error failed")
	}
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.

	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	if logging.Default() != newLogger {
		t.Error("SetDefault did not change the default logger")
	}
}

func TestNewRunLogger_MirrorsToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.log")

	logger, closer, err := logging.NewRunLogger("info", path)
	if err != nil {
		t.Fatalf("NewRunLogger() error = %v", err)
	}

	logger.Info("extraction complete", "files", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("close run log: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(content), "extraction complete") {
		t.Errorf("run log missing record, got %q", content)
	}

	// A second run appends rather than truncates.
	logger, closer, err = logging.NewRunLogger("info", path)
	if err != nil {
		t.Fatalf("NewRunLogger() reopen error = %v", err)
	}
	logger.Info("second run")
	if err := closer.Close(); err != nil {
		t.Fatalf("close run log: %v", err)
	}

	content, _ = os.ReadFile(path)
	if !strings.Contains(string(content), "extraction complete") || !strings.Contains(string(content), "second run") {
		t.Errorf("run log should accumulate records, got %q", content)
	}
}

func TestNewRunLogger_EmptyPath(t *testing.T) {
	t.Parallel()

	logger, closer, err := logging.NewRunLogger("debug", "")
	if err != nil {
		t.Fatalf("NewRunLogger() error = %v", err)
	}
	if logger == nil {
		t.Fatal("nil logger")
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}
	if err := closer.Close(); err != nil {
		t.Errorf("no-op closer returned %v", err)
	}
}
