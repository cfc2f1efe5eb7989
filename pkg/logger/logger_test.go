package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerLifecycle(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("sync: %v", err)
		}
		_ = Init()
	}()

	ctx := context.Background()
	Get().Info(ctx, "dataset loaded", String("source", "upload"))
	Named("ingest").Info(ctx, "row dropped", Int("line", 7))

	out := buf.String()
	if !strings.Contains(out, "dataset loaded") || !strings.Contains(out, "ingest.line=7") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLoggerRecordsCallSite(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat(FormatJSON), WithOutput(&buf)); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() { _ = Init() }()

	Get().Warn(context.Background(), "slow upstream")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	src, ok := entry["source"].(map[string]any)
	if !ok {
		t.Fatalf("expected source in %v", entry)
	}
	if file, _ := src["file"].(string); !strings.HasSuffix(file, "logger_test.go") {
		t.Errorf("source should point at the caller, got %v", src["file"])
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat(FormatJSON), WithOutput(&buf), WithLevel("debug")); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	defer func() { _ = Init() }()

	Named("scoring").Debug(context.Background(), "scored",
		Int64("client_id", 100002), Float64("probability", 0.427), Bool("cached", false))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "scored" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	group, ok := entry["scoring"].(map[string]any)
	if !ok {
		t.Fatalf("expected named group in %v", entry)
	}
	if group["client_id"] != float64(100002) {
		t.Errorf("unexpected client_id: %v", group["client_id"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf), WithLevel("warn")); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = Init() }()

	Get().Info(context.Background(), "hidden")
	Get().Warn(context.Background(), "shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn entry missing")
	}
}

func TestLoggerRejectsUnknownSettings(t *testing.T) {
	if err := Init(WithFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := Init(WithLevel("loud")); err == nil {
		t.Error("expected error for unknown level")
	}
	_ = Init()
}
