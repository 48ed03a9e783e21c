// Package wdmetrics is the OpenTelemetry-backed watchdog.MetricsRecorder
// and watchdog.HealthSnapshotter-adjacent instrumentation this repository
// wires in, adapted from the teacher's internal/otel metrics integration.
package wdmetrics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ExporterType selects which metrics backend Recorder exports to.
type ExporterType string

const (
	// ExporterNone disables metrics export entirely (no-op Recorder).
	ExporterNone ExporterType = "none"
	// ExporterStdout exports metrics to stdout, useful for local debugging.
	ExporterStdout ExporterType = "stdout"
	// ExporterOTLPGRPC exports metrics over OTLP/gRPC.
	ExporterOTLPGRPC ExporterType = "otlp-grpc"
	// ExporterOTLPHTTP exports metrics over OTLP/HTTP.
	ExporterOTLPHTTP ExporterType = "otlp-http"
)

// Config holds Recorder configuration.
type Config struct {
	// Enabled controls whether metrics collection is active. Default: false.
	Enabled bool

	// ServiceName attributes every emitted metric.
	ServiceName string

	// ExporterType selects the backend.
	ExporterType ExporterType

	// OTLPEndpoint is the endpoint for OTLP exporters (e.g. "localhost:4317").
	OTLPEndpoint string

	// OTLPInsecure disables TLS for OTLP connections.
	OTLPInsecure bool
}

// DefaultConfig returns a configuration with metrics disabled.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		ServiceName:  "watchdogclient",
		ExporterType: ExporterNone,
	}
}

// Recorder implements watchdog.MetricsRecorder on top of an OpenTelemetry
// MeterProvider. When disabled, every method is a no-op and Shutdown
// returns nil immediately.
type Recorder struct {
	cfg           Config
	meterProvider *sdkmetric.MeterProvider
	shutdownFn    func(context.Context) error

	mu          sync.Mutex
	gaugeReg    metric.Registration
	heartbeats  metric.Int64Counter
	timeouts    metric.Int64Counter
	activeGauge metric.Int64ObservableGauge
}

// New builds a Recorder. counter is consulted by an asynchronous gauge
// ("watchdog.tasks_active") on every collection pass; it is typically the
// *watchdog.Client itself. If cfg.Enabled is false, or ExporterType is
// ExporterNone, New returns a fully functional no-op Recorder.
func New(ctx context.Context, cfg Config, counter TaskCounter) (*Recorder, error) {
	r := &Recorder{cfg: cfg}

	if !cfg.Enabled || cfg.ExporterType == ExporterNone {
		r.meterProvider = sdkmetric.NewMeterProvider()
		r.shutdownFn = func(context.Context) error { return nil }
		if err := r.registerInstruments(r.meterProvider.Meter(cfg.ServiceName), counter); err != nil {
			return nil, err
		}
		return r, nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("wdmetrics: create exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes("", semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("wdmetrics: build resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	r.meterProvider = mp
	r.shutdownFn = mp.Shutdown

	if err := r.registerInstruments(mp.Meter(cfg.ServiceName), counter); err != nil {
		return nil, err
	}
	return r, nil
}

func newExporter(ctx context.Context, cfg Config) (sdkmetric.Exporter, error) {
	switch cfg.ExporterType {
	case ExporterStdout:
		return stdoutmetric.New()
	case ExporterOTLPGRPC:
		opts := []otlpmetricgrpc.Option{}
		if cfg.OTLPEndpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint))
		}
		if cfg.OTLPInsecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		return otlpmetricgrpc.New(ctx, opts...)
	case ExporterOTLPHTTP:
		opts := []otlpmetrichttp.Option{}
		if cfg.OTLPEndpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint))
		}
		if cfg.OTLPInsecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("wdmetrics: unknown exporter type: %s", cfg.ExporterType)
	}
}

// TaskCounter is the subset of watchdog.TaskCounter this package needs;
// defined locally to avoid an import cycle with internal/watchdog.
type TaskCounter interface {
	TaskCount() int
}

func (r *Recorder) registerInstruments(meter metric.Meter, counter TaskCounter) error {
	var err error

	r.heartbeats, err = meter.Int64Counter(
		"watchdog.heartbeats_sent",
		metric.WithDescription("Count of UDP heartbeat datagrams sent"),
	)
	if err != nil {
		return fmt.Errorf("wdmetrics: create heartbeats counter: %w", err)
	}

	r.timeouts, err = meter.Int64Counter(
		"watchdog.timeouts_latched",
		metric.WithDescription("Count of task timeouts latched"),
	)
	if err != nil {
		return fmt.Errorf("wdmetrics: create timeouts counter: %w", err)
	}

	if counter == nil {
		return nil
	}

	r.activeGauge, err = meter.Int64ObservableGauge(
		"watchdog.tasks_active",
		metric.WithDescription("Number of tasks currently monitored"),
	)
	if err != nil {
		return fmt.Errorf("wdmetrics: create active tasks gauge: %w", err)
	}

	r.gaugeReg, err = meter.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(r.activeGauge, int64(counter.TaskCount()))
			return nil
		},
		r.activeGauge,
	)
	if err != nil {
		return fmt.Errorf("wdmetrics: register active tasks callback: %w", err)
	}
	return nil
}

// RecordHeartbeatSent implements watchdog.MetricsRecorder.
func (r *Recorder) RecordHeartbeatSent() {
	if r.heartbeats == nil {
		return
	}
	r.heartbeats.Add(context.Background(), 1, metric.WithAttributes(attribute.String("component", "watchdog")))
}

// RecordTimeoutLatched implements watchdog.MetricsRecorder.
func (r *Recorder) RecordTimeoutLatched() {
	if r.timeouts == nil {
		return
	}
	r.timeouts.Add(context.Background(), 1, metric.WithAttributes(attribute.String("component", "watchdog")))
}

// Shutdown unregisters the active-tasks callback and flushes the
// underlying MeterProvider.
func (r *Recorder) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gaugeReg != nil {
		if err := r.gaugeReg.Unregister(); err != nil {
			return fmt.Errorf("wdmetrics: unregister active tasks callback: %w", err)
		}
	}
	if r.shutdownFn != nil {
		return r.shutdownFn(ctx)
	}
	return nil
}
