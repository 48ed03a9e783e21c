//go:build !windows

package shutdownevent

import (
	"os"
	"time"
)

// pollInterval is how often waitOnPlatformEvent re-checks for the
// sentinel file's presence. Coarse enough to avoid busy-looping, fine
// enough that a shutdown is noticed well within one polling cadence of
// the embedding application's WaitForShutdownEvent loop.
const pollInterval = 25 * time.Millisecond

// waitOnPlatformEvent treats name as a filesystem path and waits up to
// timeout for it to exist, polling at pollInterval. POSIX has no
// out-of-the-box named, waitable, manual-reset kernel event analogous to
// a Win32 event, so the supervisor signals shutdown on non-Windows hosts
// by creating this file; once created it is never expected to be
// removed for the life of the process. Every call checks the file again,
// so while it stays in place every call reports signaled.
func waitOnPlatformEvent(name string, timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(name); err == nil {
			return true, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		sleep := pollInterval
		if remaining < sleep {
			sleep = remaining
		}
		time.Sleep(sleep)
	}
}
