package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestCloudRunHandlerWritesSeverityAndData(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelInfo)).With("request_id", "req-1")

	log.Warn("resource not found", "collection", "posts", "error", errors.New("boom"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if event["severity"] != "WARNING" || event["message"] != "resource not found" {
		t.Fatalf("unexpected event: %v", event)
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data: %v", event)
	}
	if data["request_id"] != "req-1" || data["collection"] != "posts" || data["error"] != "boom" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestCloudRunHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelWarn))

	log.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}

func TestNewParsesLevel(t *testing.T) {
	log := New("debug", NewTestHandler)
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug enabled")
	}
	log = New("bogus", NewTestHandler)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("unknown level should default to info")
	}
}
