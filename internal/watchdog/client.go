// Package watchdog is the watchdog client agent's core: the concurrent task
// registry, the single background scheduler that computes the next wakeup,
// sends heartbeats, and latches timeout state, and the scoped timeout
// detector helper. It reports the liveness of multiple named in-process
// tasks to an external supervisor and cooperates with an externally
// signaled shutdown.
//
// The core depends only on narrow interfaces — ConfigSource, Clock,
// UDPSender, ShutdownWaiter, plus the ambient process environment — never
// on concrete configuration parsing, log shipping, or encryption. See
// internal/wdconfig, internal/wdmetrics, internal/wdhealth, and
// internal/shutdownevent for the concrete collaborators this repository
// wires in around the core.
package watchdog

import (
	"log/slog"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/svcwatchdog/watchdogclient/internal/events"
	"github.com/svcwatchdog/watchdogclient/internal/shutdownevent"
)

// Client is the watchdog client agent. The zero value is not usable; build
// one with New. Most embedding applications only ever need the
// process-wide singleton returned by Default.
type Client struct {
	registry *Registry
	trigger  *trigger

	mu                sync.Mutex // guards the configuration/lifecycle fields below
	enabled           bool
	udpPingIntervalMs int64
	udpPort           int
	watchdogSecret    []byte
	shutdownEventName string

	heartbeatTaskName string // fixed for the life of the Client

	stopped       atomic.Bool
	schedulerDone chan struct{}

	clock                 Clock
	udpSender             UDPSender
	shutdownWaiterFactory func(name string) ShutdownWaiter
	shutdownWaiter        ShutdownWaiter

	logSlog *slog.Logger
	ev      *events.EventLogger
	metrics MetricsRecorder
	health  HealthSnapshotter
}

// New constructs a Client with production defaults (a real monotonic
// clock, a loopback UDP sender, and an OS-backed shutdown waiter factory),
// customized by opts. The client starts enabled with a 10s heartbeat
// interval; call Initialize to load real configuration before Start.
func New(opts ...Option) *Client {
	c := &Client{
		registry:              newRegistry(),
		trigger:               newTrigger(),
		enabled:               true,
		udpPingIntervalMs:     10_000,
		heartbeatTaskName:     "_udpPing." + uuid.NewString(),
		clock:                 NewMonotonicClock(),
		udpSender:              newLoopbackUDPSender(),
		shutdownWaiterFactory: func(name string) ShutdownWaiter { return shutdownevent.NewWaiter(name) },
		logSlog:               slog.Default(),
		ev:                    events.NoopEventLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize reads Enabled (default true) and UdpPingInterval in seconds
// (default 10) from cfg. If the client was previously stopped, it resets
// all runtime state (terminal flag, task map, timed-out set) so Start can
// be called again — mainly useful for tests that reuse one Client across
// scenarios.
func (c *Client) Initialize(cfg ConfigSource) {
	if cfg == nil {
		cfg = defaultConfigSource{}
	}

	c.mu.Lock()
	c.enabled = cfg.Bool(Section, "Enabled", true)
	c.udpPingIntervalMs = int64(cfg.Int(Section, "UdpPingInterval", 10)) * 1000
	c.mu.Unlock()

	if c.stopped.Load() {
		c.stopped.Store(false)
		c.registry.reset()
	}
}

// Start launches the scheduler. It reads SHUTDOWN_EVENT, WATCHDOG_SECRET,
// and WATCHDOG_PORT from the environment. If WATCHDOG_PORT is present and
// parses as an integer, it seeds the heartbeat task with an imminent
// deadline so the first heartbeat fires promptly; if parsing fails, it
// logs an error and leaves UDP pinging inactive. When the client is
// disabled, Start logs a notice and returns without launching the
// scheduler. Start returns ErrAlreadyStopped if called after Stop without
// an intervening Initialize.
func (c *Client) Start() error {
	if c.stopped.Load() {
		return ErrAlreadyStopped
	}

	c.mu.Lock()
	c.shutdownEventName = os.Getenv("SHUTDOWN_EVENT")
	c.mu.Unlock()
	c.shutdownWaiter = c.shutdownWaiterFactory(c.shutdownEventName)

	if !c.enabledSnapshot() {
		c.logger().Info("watchdog: not enabled")
		return nil
	}

	c.logger().Info("watchdog: starting")

	c.mu.Lock()
	c.watchdogSecret = []byte(os.Getenv("WATCHDOG_SECRET"))
	c.mu.Unlock()

	if portStr := os.Getenv("WATCHDOG_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			c.logger().Error("watchdog: invalid WATCHDOG_PORT value", "value", portStr, "err", err)
			c.mu.Lock()
			c.udpPort = 0
			c.mu.Unlock()
		} else {
			c.mu.Lock()
			c.udpPort = port
			c.mu.Unlock()
			now := c.clock.NowMs()
			c.registry.setDeadline(c.heartbeatTaskName, now+1)
			c.logger().Debug("watchdog: UDP pinging configured", "port", port)
		}
	}

	c.schedulerDone = make(chan struct{})
	go c.schedulerLoop()

	c.logger().Info("watchdog: started")
	return nil
}

// Stop sets the terminal flag and joins the scheduler, re-triggering it
// every second until it exits. Safe to call more than once; safe to call
// even if Start was never called or the client was disabled.
func (c *Client) Stop() {
	c.logger().Info("watchdog: stopping")
	c.stopped.Store(true)

	if c.schedulerDone == nil {
		c.logger().Info("watchdog: stopped")
		return
	}

	for {
		c.trigger.set()
		select {
		case <-c.schedulerDone:
			c.logger().Info("watchdog: stopped")
			return
		case <-time.After(time.Second):
		}
	}
}

// Ping refreshes (or creates) name's deadline to now + timeoutSeconds. A
// no-op if the client is disabled. Does not resurrect a name already
// latched into the timed-out set — see DESIGN.md for why that is accepted
// as defined behavior rather than a bug.
func (c *Client) Ping(name string, timeoutSeconds int) {
	if !c.enabledSnapshot() {
		return
	}
	now := c.clock.NowMs()
	deadline := now + int64(timeoutSeconds)*1000
	if c.registry.setDeadline(name, deadline) {
		c.trigger.set()
	}
	c.ev.LogTaskRegistered(name, timeoutSeconds)
}

// CloseTimeout removes name from monitoring, closing its timeout. Missing
// names are silently ignored; a no-op if the client is disabled.
// Idempotent: closing an already-closed name has no further effect.
func (c *Client) CloseTimeout(name string) {
	if !c.enabledSnapshot() {
		return
	}
	c.registry.close(name)
	c.ev.LogTaskClosed(name)
}

// IsTimedOut reports whether the watchdog has latched a timeout. Once
// true within a lifecycle, it never reports false again until a fresh
// Initialize/Start cycle.
func (c *Client) IsTimedOut() bool {
	return c.enabledSnapshot() && c.registry.hasTimedOut()
}

// IsUDPPingingActive reports whether the reserved heartbeat task is
// currently registered.
func (c *Client) IsUDPPingingActive() bool {
	return c.registry.has(c.heartbeatTaskName)
}

// TaskList returns a snapshot of the names of tasks currently being
// monitored (including the reserved heartbeat task, if active).
func (c *Client) TaskList() []string {
	return c.registry.taskNames()
}

// TaskCount returns the number of currently monitored tasks. Implements
// TaskCounter for an external async gauge (see internal/wdmetrics).
func (c *Client) TaskCount() int {
	return c.registry.count()
}

// WaitForShutdownEvent waits up to timeout for the supervisor's shutdown
// event. If no shutdown event is configured (or Start has not been
// called), it sleeps for timeout and returns false.
func (c *Client) WaitForShutdownEvent(timeout time.Duration) bool {
	w := c.shutdownWaiter
	if w == nil {
		time.Sleep(timeout)
		return false
	}
	signaled := w.Wait(timeout)
	if signaled {
		c.ev.LogShutdownSignaled()
	}
	return signaled
}

func (c *Client) enabledSnapshot() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Client) udpPingIntervalMsSnapshot() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.udpPingIntervalMs
}

func (c *Client) udpPortSnapshot() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.udpPort
}

func (c *Client) watchdogSecretSnapshot() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.watchdogSecret
}

func (c *Client) logger() *slog.Logger {
	if c.logSlog != nil {
		return c.logSlog
	}
	return slog.Default()
}
