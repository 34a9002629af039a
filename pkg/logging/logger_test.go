package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterLoggerWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "nav-1")

	if err := l.Info(CategoryNavigate, "push", "pushed detail", map[string]any{"kind": "detail"}); err != nil {
		t.Fatalf("Info() error = %v", err)
	}

	line := strings.TrimSpace(buf.String())
	var event Event
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if event.Category != CategoryNavigate {
		t.Errorf("Category = %q, want %q", event.Category, CategoryNavigate)
	}
	if event.EventType != "push" {
		t.Errorf("EventType = %q, want push", event.EventType)
	}
	if event.NavigatorID != "nav-1" {
		t.Errorf("NavigatorID = %q, want nav-1", event.NavigatorID)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be stamped automatically")
	}
}

func TestMinLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "nav-1")

	if err := l.Debug(CategoryGesture, "progress", "", nil); err != nil {
		t.Fatalf("Debug() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Error("debug event should be filtered at default info level")
	}

	l.SetMinLevel(LevelDebug)
	if err := l.Debug(CategoryGesture, "progress", "", nil); err != nil {
		t.Fatalf("Debug() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("debug event should pass after lowering min level")
	}
}

func TestFileLogger(t *testing.T) {
	dir := t.TempDir()

	l, err := NewLogger(dir, "nav-file")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	if err := l.Warn(CategoryBack, "delegate", "back delegated to system", nil); err != nil {
		t.Fatalf("Warn() error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nav-file.jsonl"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "delegate") {
		t.Errorf("log file missing event: %s", data)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger

	if err := l.Info(CategoryNavigate, "push", "", nil); err != nil {
		t.Errorf("nil logger Info() error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("nil logger Close() error = %v", err)
	}
}
