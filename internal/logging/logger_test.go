package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hello", String("component", "test"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", record["msg"])
	}
	if record["component"] != "test" {
		t.Errorf("component = %v, want test", record["component"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestNewWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", LogDir: dir, Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("file sink check")

	data, err := os.ReadFile(filepath.Join(dir, "karasync.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "file sink check") {
		t.Errorf("log file missing record: %q", data)
	}
	if !strings.Contains(buf.String(), "file sink check") {
		t.Errorf("console missing record: %q", buf.String())
	}
}

func TestNoopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should report disabled at every level")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "scanner")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
