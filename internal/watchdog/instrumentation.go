package watchdog

// MetricsRecorder receives counts of watchdog events for external
// instrumentation. Both methods must be safe to call from the scheduler
// goroutine. See internal/wdmetrics for an OpenTelemetry-backed
// implementation.
type MetricsRecorder interface {
	RecordHeartbeatSent()
	RecordTimeoutLatched()
}

// HealthSnapshotter captures a best-effort process resource snapshot to
// attach to the timed-out-tasks log line. See internal/wdhealth for a
// gopsutil-backed implementation. A failing snapshot must return a
// non-nil error and a nil map; it is logged at debug level and otherwise
// ignored.
type HealthSnapshotter interface {
	Snapshot() (map[string]any, error)
}

// TaskCounter exposes the current task count for an external async gauge.
// *Client implements it (see Client.TaskCount).
type TaskCounter interface {
	TaskCount() int
}
