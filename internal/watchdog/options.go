package watchdog

import (
	"log/slog"

	"github.com/svcwatchdog/watchdogclient/internal/events"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger overrides the client's diagnostic logger. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logSlog = l }
}

// WithEventLogger overrides the client's structured event logger. Defaults
// to a no-op logger.
func WithEventLogger(el *events.EventLogger) Option {
	return func(c *Client) { c.ev = el }
}

// WithClock overrides the monotonic clock. Defaults to NewMonotonicClock().
// Intended for tests that need to control time deterministically.
func WithClock(clk Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// WithUDPSender overrides the heartbeat transport. Defaults to a sender
// that dials 127.0.0.1:<port> over UDP.
func WithUDPSender(s UDPSender) Option {
	return func(c *Client) { c.udpSender = s }
}

// WithShutdownWaiterFactory overrides how the client builds a
// ShutdownWaiter from the SHUTDOWN_EVENT environment variable at Start.
// Defaults to shutdownevent.NewWaiter.
func WithShutdownWaiterFactory(f func(name string) ShutdownWaiter) Option {
	return func(c *Client) { c.shutdownWaiterFactory = f }
}

// WithMetricsRecorder attaches an external metrics sink. Nil (the
// default) disables metrics recording entirely.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(c *Client) { c.metrics = m }
}

// SetMetricsRecorder attaches an external metrics sink after
// construction. Useful when the recorder itself needs the Client as a
// TaskCounter (see internal/wdmetrics), which creates an ordering
// dependency New's functional options can't express. Like the With*
// options, it must be called before Start.
func (c *Client) SetMetricsRecorder(m MetricsRecorder) {
	c.metrics = m
}

// WithHealthSnapshotter attaches a process health snapshotter, consulted
// once when a timeout latches. Nil (the default) disables snapshotting.
func WithHealthSnapshotter(h HealthSnapshotter) Option {
	return func(c *Client) { c.health = h }
}
