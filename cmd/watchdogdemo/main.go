// Command watchdogdemo exercises the watchdog client agent end to end: it
// starts a client, registers a main-loop task, pings it periodically,
// and tears down cleanly on a shutdown signal or a detected timeout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/svcwatchdog/watchdogclient/internal/events"
	"github.com/svcwatchdog/watchdogclient/internal/watchdog"
	"github.com/svcwatchdog/watchdogclient/internal/wdconfig"
	"github.com/svcwatchdog/watchdogclient/internal/wdhealth"
	"github.com/svcwatchdog/watchdogclient/internal/wdmetrics"
)

func main() {
	configPath := flag.String("config", "./watchdog.yaml", "Path to the watchdog YAML configuration file")
	taskName := flag.String("task-name", "mainLoop", "Name of the task this process pings on every tick")
	taskTimeout := flag.Int("task-timeout", 30, "Timeout in seconds for the main-loop task")
	pollInterval := flag.Duration("poll-interval", time.Second, "How often the main loop checks for shutdown")
	pingEvery := flag.Int("ping-every", 10, "Re-ping the main-loop task every N poll ticks")
	metricsExporter := flag.String("metrics-exporter", "none", "Metrics exporter: none, stdout, otlp-grpc, or otlp-http")
	metricsEndpoint := flag.String("metrics-endpoint", "", "OTLP endpoint, when --metrics-exporter is otlp-grpc or otlp-http")
	flag.Parse()

	cfg, err := wdconfig.LoadYAMLFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watchdogdemo: load config: %v\n", err)
		os.Exit(1)
	}

	ev := events.NewEventLogger("watchdogdemo")
	client := watchdog.New(
		watchdog.WithEventLogger(ev),
		watchdog.WithHealthSnapshotter(wdhealth.NewSnapshotter()),
	)
	watchdog.SetDefault(client)

	ctxBg := context.Background()
	metricsCfg := wdmetrics.DefaultConfig()
	metricsCfg.Enabled = *metricsExporter != "none"
	metricsCfg.ExporterType = wdmetrics.ExporterType(*metricsExporter)
	metricsCfg.OTLPEndpoint = *metricsEndpoint
	recorder, err := wdmetrics.New(ctxBg, metricsCfg, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watchdogdemo: metrics: %v\n", err)
		os.Exit(1)
	}
	defer recorder.Shutdown(ctxBg)
	client.SetMetricsRecorder(recorder)

	client.Initialize(cfg)
	client.Ping(*taskName, *taskTimeout)
	if err := client.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "watchdogdemo: start: %v\n", err)
		os.Exit(1)
	}

	slog.Info("watchdogdemo: running", "task_name", *taskName, "task_timeout", *taskTimeout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(*pollInterval)
	defer ticker.Stop()

	tick := 0
runLoop:
	for {
		select {
		case <-ctx.Done():
			slog.Info("watchdogdemo: received shutdown signal")
			break runLoop
		case <-ticker.C:
			tick++
			if client.IsTimedOut() {
				slog.Error("watchdogdemo: watchdog timed out, exiting")
				break runLoop
			}
			if client.WaitForShutdownEvent(0) {
				slog.Info("watchdogdemo: supervisor signaled shutdown")
				break runLoop
			}
			if tick%*pingEvery == 0 {
				client.Ping(*taskName, *taskTimeout)
			}
		}
	}

	client.Stop()
	slog.Info("watchdogdemo: stopped")
}
