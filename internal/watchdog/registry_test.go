package watchdog

import "testing"

func TestSetDeadlineReportsWhetherToTrigger(t *testing.T) {
	r := newRegistry()
	if !r.setDeadline("a", 100) {
		t.Error("first deadline on an empty registry should always trigger")
	}
	// Only a scheduler pass recomputes the cached next-check (now 100).
	r.tick(0, "", 10_000)
	if r.setDeadline("b", 500) {
		t.Error("a later deadline than the current next-check should not trigger")
	}
	if !r.setDeadline("c", 50) {
		t.Error("an earlier deadline than the current next-check should trigger")
	}
}

func TestCloseRemovesTask(t *testing.T) {
	r := newRegistry()
	r.setDeadline("a", 100)
	r.close("a")
	if r.has("a") {
		t.Error("expected task to be removed after close")
	}
	r.close("missing") // must not panic
}

func TestTickLatchesExpiredTaskAndStopsHeartbeat(t *testing.T) {
	r := newRegistry()
	r.setDeadline("worker", 100)
	r.setDeadline("_udpPing.x", 1000)

	result := r.tick(150, "_udpPing.x", 10_000)
	if !result.timeoutDetected {
		t.Fatal("expected timeout to be detected")
	}
	if result.heartbeatDue {
		t.Error("heartbeat must not fire in the same tick a timeout latches")
	}
	if r.has("worker") {
		t.Error("expired task should be removed from the task map")
	}
	if r.has("_udpPing.x") {
		t.Error("heartbeat task should be removed once any timeout latches")
	}
	if !r.hasTimedOut() {
		t.Error("registry should report a latched timeout")
	}
}

func TestTickReschedulesHeartbeatWhenDue(t *testing.T) {
	r := newRegistry()
	r.setDeadline("_udpPing.x", 100)

	result := r.tick(150, "_udpPing.x", 10_000)
	if !result.heartbeatDue {
		t.Fatal("expected heartbeat to be due")
	}
	if result.timeoutDetected {
		t.Error("no non-heartbeat task should have timed out")
	}
	if !r.has("_udpPing.x") {
		t.Error("heartbeat task should be rescheduled, not removed")
	}

	next := r.nextCheckSnapshot()
	if next != 150+10_000 {
		t.Errorf("nextCheck = %d, want %d", next, 150+10_000)
	}
}

func TestTickNeverResurrectsTimedOutTask(t *testing.T) {
	r := newRegistry()
	r.setDeadline("worker", 100)
	r.tick(150, "", 10_000)
	if !r.hasTimedOut() {
		t.Fatal("expected worker to have timed out")
	}

	// Pinging a task already latched into the timed-out set is not
	// rejected by setDeadline -- it simply reappears in the task map.
	r.setDeadline("worker", 10_000)
	if !r.has("worker") {
		t.Error("expected worker to reappear in the task map after a fresh ping")
	}
	if !r.hasTimedOut() {
		t.Error("the timed-out set is never cleared by a later ping")
	}
}

func TestResetClearsAllState(t *testing.T) {
	r := newRegistry()
	r.setDeadline("a", 100)
	r.tick(150, "", 10_000)
	r.reset()

	if r.count() != 0 {
		t.Error("expected an empty task map after reset")
	}
	if r.hasTimedOut() {
		t.Error("expected an empty timed-out set after reset")
	}
	if r.nextCheckSnapshot() != FarFuture {
		t.Error("expected nextCheck to be reset to FarFuture")
	}
}
