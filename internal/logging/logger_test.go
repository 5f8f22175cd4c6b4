package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adsync/internal/logging"
	"adsync/internal/services"
)

func TestPrettyFormatPrefixesComponentAndRendersAttrs(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "adsync.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	component := logging.NewComponentLogger(logger, "uploader")
	component.Info("asset uploaded",
		logging.String("asset", "v1/4x5 hero.png"),
		logging.Int("attempt", 2))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO uploader: asset uploaded") {
		t.Fatalf("unexpected pretty line: %q", line)
	}
	if !strings.Contains(line, `asset="v1/4x5 hero.png"`) {
		t.Fatalf("expected quoted attr value, got %q", line)
	}
	if !strings.Contains(line, "attempt=2") {
		t.Fatalf("expected int attr, got %q", line)
	}
}

func TestPrettyFormatHonorsLevel(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "adsync.log")
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatal("info line should be suppressed at warn level")
	}
	if !strings.Contains(string(data), "visible") {
		t.Fatal("warn line missing")
	}
}

func TestJSONFormatEmitsStandardKeys(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "adsync.json")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("sync finished", logging.Int("succeeded", 3), logging.Error(errors.New("partial")))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("parse json line: %v (%q)", err, data)
	}
	if payload["msg"] != "sync finished" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts key")
	}
	if payload["succeeded"] != float64(3) {
		t.Fatalf("unexpected succeeded: %v", payload["succeeded"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsIdentifiers(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "adsync.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithPackageID(context.Background(), "summer-launch")
	ctx = services.WithRunID(ctx, "run-9")
	logging.WithContext(ctx, logger).Info("starting")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "package_id=summer-launch") || !strings.Contains(line, "run_id=run-9") {
		t.Fatalf("expected context identifiers in line %q", line)
	}
}

func TestNopLoggerDiscardsEverything(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 0) {
		t.Fatal("nop logger must report disabled")
	}
	logger.Error("ignored", logging.Error(nil))
}
