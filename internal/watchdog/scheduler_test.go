package watchdog

import (
	"errors"
	"testing"
	"time"

	"github.com/svcwatchdog/watchdogclient/internal/wdconfig"
)

type failingUDPSender struct{}

func (failingUDPSender) Send(_ []byte, _ int) error {
	return errors.New("connection refused")
}

// TestHeartbeatSendFailureDoesNotStopScheduler verifies a failed datagram
// send degrades to a debug log line rather than killing the scheduler
// goroutine, matching the best-effort heartbeat contract.
func TestHeartbeatSendFailureDoesNotStopScheduler(t *testing.T) {
	t.Setenv("WATCHDOG_PORT", "9")
	c := New(WithUDPSender(failingUDPSender{}))
	c.Initialize(wdconfig.NewStaticSource())
	c.udpPingIntervalMs = 20

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	time.Sleep(100 * time.Millisecond)
	if !c.IsUDPPingingActive() {
		t.Error("heartbeat task should still be scheduled despite send failures")
	}
}

type failingHealthSnapshotter struct{}

func (failingHealthSnapshotter) Snapshot() (map[string]any, error) {
	return nil, errors.New("snapshot unavailable")
}

// TestTimeoutLatchSurvivesHealthSnapshotFailure verifies a failing health
// snapshot degrades to an empty attribute set rather than blocking the
// timeout log line.
func TestTimeoutLatchSurvivesHealthSnapshotFailure(t *testing.T) {
	c := New(WithHealthSnapshotter(failingHealthSnapshotter{}))
	c.Initialize(wdconfig.NewStaticSource())
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	c.Ping("worker", 0)
	if !waitUntil(t, time.Second, c.IsTimedOut) {
		t.Fatal("expected a task timeout to be detected")
	}
}
