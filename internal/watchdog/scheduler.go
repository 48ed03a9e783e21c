package watchdog

import (
	"fmt"
	"time"
)

const (
	minWaitMs = 100
	maxWaitMs = 60_000
)

// schedulerLoop is the single background goroutine launched by Start. It
// repeatedly ticks the registry, reacts to whatever the tick observed, and
// sleeps on the trigger until either the next deadline is due or Ping/Stop
// wakes it early. A panic here is caught and logged at critical severity
// rather than crashing the embedding process; the watchdog going dark is
// always preferable to it taking the host service down with it.
func (c *Client) schedulerLoop() {
	defer close(c.schedulerDone)
	defer func() {
		if r := recover(); r != nil {
			c.assertLog(false, fmt.Sprintf("schedulerLoop panic: %v", r))
		}
	}()

	for !c.stopped.Load() {
		now := c.clock.NowMs()
		result := c.registry.tick(now, c.heartbeatTaskName, c.udpPingIntervalMsSnapshot())

		// Mutually exclusive by construction: a timeout latched anywhere
		// in this tick always removes the heartbeat task from the map
		// (see Registry.tick), so a heartbeat due earlier in the same
		// pass must not still be sent once a timeout has also latched.
		if result.timeoutDetected {
			c.handleTimeoutLatched()
		} else if result.heartbeatDue {
			c.handleHeartbeatDue()
		}

		waitMs := c.registry.nextCheckSnapshot() - now + 50
		if waitMs < minWaitMs {
			waitMs = minWaitMs
		}
		if waitMs > maxWaitMs {
			waitMs = maxWaitMs
		}
		c.trigger.wait(time.Duration(waitMs) * time.Millisecond)
	}
}

func (c *Client) handleTimeoutLatched() {
	health := map[string]any{}
	if c.health != nil {
		if snap, err := c.health.Snapshot(); err != nil {
			c.logger().Debug("watchdog: health snapshot failed", "err", err)
		} else {
			health = snap
		}
	}
	c.ev.LogTasksTimedOut(c.registry.timedOutNames(), health)
	if c.metrics != nil {
		c.metrics.RecordTimeoutLatched()
	}
}

func (c *Client) handleHeartbeatDue() {
	c.assertLog(c.registry.has(c.heartbeatTaskName), "heartbeat task missing at send time")

	port := c.udpPortSnapshot()
	if port == 0 {
		return
	}
	payload := c.watchdogSecretSnapshot()
	if err := c.udpSender.Send(payload, port); err != nil {
		c.logger().Debug("watchdog: heartbeat send failed", "err", err, "port", port)
		return
	}
	c.ev.LogHeartbeatSent(port)
	if c.metrics != nil {
		c.metrics.RecordHeartbeatSent()
	}
}
