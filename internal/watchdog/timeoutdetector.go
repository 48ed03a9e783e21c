package watchdog

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// TimeoutDetector binds a deadline's lifetime to a scoped block of work:
// construction registers name (optionally suffixed with a fresh UUID to
// guarantee uniqueness) with the given timeout; Close removes it. If the
// guarded block does not call Close within timeoutSeconds, the scheduler
// latches a process-level timeout.
//
// Typical use:
//
//	td := watchdog.NewTimeoutDetector(client, "rebuild-index", 30, true)
//	defer td.Close()
type TimeoutDetector struct {
	client *Client
	name   string
	closed atomic.Bool
}

// NewTimeoutDetector registers name with c and returns a detector whose
// Close must be called on every exit path of the guarded block (typically
// via defer). When uniqueSuffix is true, a fresh UUID is appended to name
// so concurrent callers guarding the same logical operation never collide.
func NewTimeoutDetector(c *Client, name string, timeoutSeconds int, uniqueSuffix bool) *TimeoutDetector {
	resolved := name
	if uniqueSuffix {
		resolved = name + "." + uuid.NewString()
	}
	c.Ping(resolved, timeoutSeconds)
	return &TimeoutDetector{client: c, name: resolved}
}

// Name returns the (possibly UUID-suffixed) task name this detector
// registered.
func (d *TimeoutDetector) Name() string {
	return d.name
}

// Close removes the registered deadline. Safe to call more than once and
// from any goroutine; only the first call has effect.
func (d *TimeoutDetector) Close() {
	if d.closed.CompareAndSwap(false, true) {
		d.client.CloseTimeout(d.name)
	}
}
