// Package events provides structured logging for key watchdog lifecycle
// events: task registration, timeout latching, heartbeat delivery, and
// shutdown signaling.
package events

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// levelCritical marks an internal invariant violation: logged, never fatal.
const levelCritical = slog.LevelError + 4

// EventLogger emits structured JSON log records for watchdog events.
type EventLogger struct {
	logger   *slog.Logger
	clientID string
}

// NewEventLogger creates a new EventLogger with JSON output to stdout.
// clientID identifies the watchdog client instance emitting the events
// (useful when several monitored processes share a log sink).
func NewEventLogger(clientID string) *EventLogger {
	return newEventLogger(clientID, os.Stdout)
}

// NewEventLoggerWithWriter creates a new EventLogger with JSON output to a
// custom writer. Useful for testing or redirecting output.
func NewEventLoggerWithWriter(clientID string, w io.Writer) *EventLogger {
	return newEventLogger(clientID, w)
}

func newEventLogger(clientID string, w io.Writer) *EventLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(handler).With("client_id", clientID)
	return &EventLogger{logger: logger, clientID: clientID}
}

// LogTaskRegistered logs that a task's deadline was (re)created.
// event: "task_registered"
func (el *EventLogger) LogTaskRegistered(taskName string, timeoutSeconds int) {
	el.logger.Debug("task_registered",
		"task_name", taskName,
		"timeout_seconds", timeoutSeconds,
	)
}

// LogTaskClosed logs that a task's deadline was removed before expiring.
// event: "task_closed"
func (el *EventLogger) LogTaskClosed(taskName string) {
	el.logger.Debug("task_closed", "task_name", taskName)
}

// LogHeartbeatSent logs a successful UDP heartbeat to the supervisor.
// event: "heartbeat_sent"
func (el *EventLogger) LogHeartbeatSent(port int) {
	el.logger.Debug("heartbeat_sent", "udp_port", port)
}

// LogTasksTimedOut logs that one or more tasks missed their deadline and
// were latched into the timed-out set. health carries an optional process
// resource snapshot (nil if unavailable) to attach as extra attributes.
// event: "tasks_timed_out"
func (el *EventLogger) LogTasksTimedOut(taskNames []string, health map[string]any) {
	args := []any{"task_names", taskNames}
	for k, v := range health {
		args = append(args, k, v)
	}
	el.logger.Error("tasks_timed_out", args...)
}

// LogShutdownSignaled logs that the supervisor's shutdown event fired.
// event: "shutdown_signaled"
func (el *EventLogger) LogShutdownSignaled() {
	el.logger.Info("shutdown_signaled")
}

// LogInvariantViolation logs an internal bug signal: a condition the
// scheduler believed could never be false. It never aborts the process.
// event: "invariant_violation"
func (el *EventLogger) LogInvariantViolation(where string) {
	el.logger.Log(context.Background(), levelCritical, "invariant_violation", "where", where)
}

// Global logger management, mirroring the package-wide singleton used by
// the watchdog client itself (see internal/watchdog.Default).
var (
	globalLogger *EventLogger
	globalMu     sync.RWMutex
)

// SetGlobalEventLogger sets the global event logger instance. Passing nil
// clears it, causing GetGlobalEventLogger to return the shared no-op logger.
func SetGlobalEventLogger(l *EventLogger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// GetGlobalEventLogger returns the global event logger instance.
// If no logger is set, returns a no-op logger.
func GetGlobalEventLogger() *EventLogger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger != nil {
		return globalLogger
	}
	return NoopEventLogger()
}

// noopLogger is the single shared instance NoopEventLogger always returns:
// it discards everything, so there is never a reason for two callers to
// hold distinct copies.
var noopLogger = &EventLogger{logger: slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))}

// NoopEventLogger returns the shared event logger that discards all
// events. Useful for testing or when event logging is disabled.
func NoopEventLogger() *EventLogger {
	return noopLogger
}
