package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("debug", "json", buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hello", slog.String("field", "email"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["level"] != "DEBUG" || entry["msg"] != "hello" || entry["field"] != "email" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewTextFiltersByLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("WARN", "text", buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "msg=kept") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewRejectsInvalidInput(t *testing.T) {
	if _, err := New("loud", "text", nil); err == nil {
		t.Fatal("expected level error")
	}
	if _, err := New("info", "xml", nil); err == nil {
		t.Fatal("expected format error")
	}
}
