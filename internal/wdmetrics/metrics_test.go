package wdmetrics

import (
	"context"
	"testing"
)

type fakeCounter struct{ n int }

func (f fakeCounter) TaskCount() int { return f.n }

func TestNewDisabledIsNoop(t *testing.T) {
	r, err := New(context.Background(), DefaultConfig(), fakeCounter{n: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.RecordHeartbeatSent()
	r.RecordTimeoutLatched()
	if err := r.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNewStdoutExporterRecordsWithoutError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ExporterType = ExporterStdout

	r, err := New(context.Background(), cfg, fakeCounter{n: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Shutdown(context.Background())

	r.RecordHeartbeatSent()
	r.RecordTimeoutLatched()
}

func TestNewUnknownExporterFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ExporterType = ExporterType("bogus")

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected an error for an unknown exporter type")
	}
}

func TestNewWithoutCounterSkipsGauge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ExporterType = ExporterStdout

	r, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Shutdown(context.Background())
	if r.activeGauge != nil {
		t.Error("expected no active tasks gauge without a TaskCounter")
	}
}
