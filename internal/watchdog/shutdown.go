package watchdog

import "time"

// ShutdownWaiter blocks up to timeout on the supervisor's named shutdown
// event, returning whether it was signaled before the timeout elapsed. The
// event is manual-reset: once signaled, every subsequent Wait call on it
// returns true. See internal/shutdownevent for the OS-level implementation
// this interface abstracts away.
type ShutdownWaiter interface {
	Wait(timeout time.Duration) (signaled bool)
}
