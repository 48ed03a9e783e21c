package events

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestGetGlobalEventLoggerReturnsSingletonNoopWhenUnset(t *testing.T) {
	SetGlobalEventLogger(nil)

	a := GetGlobalEventLogger()
	b := GetGlobalEventLogger()

	if a == nil || b == nil {
		t.Fatal("expected non-nil noop logger")
	}
	if a != b {
		t.Fatal("expected singleton noop logger instance")
	}
}

func TestLogTasksTimedOutIncludesHealthAttributes(t *testing.T) {
	var buf bytes.Buffer
	el := NewEventLoggerWithWriter("client-1", &buf)

	el.LogTasksTimedOut([]string{"task1", "task2"}, map[string]any{"rss_bytes": 12345})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if record["msg"] != "tasks_timed_out" {
		t.Fatalf("expected msg=tasks_timed_out, got %v", record["msg"])
	}
	if record["client_id"] != "client-1" {
		t.Fatalf("expected client_id=client-1, got %v", record["client_id"])
	}
	if _, ok := record["rss_bytes"]; !ok {
		t.Fatal("expected rss_bytes attribute to be present")
	}
}

func TestLogInvariantViolationNeverPanics(t *testing.T) {
	var buf bytes.Buffer
	el := NewEventLoggerWithWriter("client-1", &buf)

	el.LogInvariantViolation("registry.snapshot")

	if !strings.Contains(buf.String(), "invariant_violation") {
		t.Fatalf("expected invariant_violation in output, got %q", buf.String())
	}
}
