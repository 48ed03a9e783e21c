//go:build windows

package shutdownevent

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

const eventAllAccess = 0x1F0003

// waitOnPlatformEvent opens the named, manual-reset Win32 event the
// supervisor signals and waits up to timeout for it. OpenEvent is retried
// on every call rather than cached, since the supervisor may create the
// event after this process has already started waiting for it.
func waitOnPlatformEvent(name string, timeout time.Duration) (bool, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return false, fmt.Errorf("shutdownevent: encode event name %q: %w", name, err)
	}

	handle, err := windows.OpenEvent(eventAllAccess, false, namePtr)
	if err != nil {
		return false, fmt.Errorf("shutdownevent: open event %q: %w", name, err)
	}
	defer windows.CloseHandle(handle)

	ms := uint32(timeout.Milliseconds())
	result, err := windows.WaitForSingleObject(handle, ms)
	if err != nil {
		return false, fmt.Errorf("shutdownevent: wait on event %q: %w", name, err)
	}

	switch result {
	case windows.WAIT_OBJECT_0:
		return true, nil
	case uint32(windows.WAIT_TIMEOUT):
		return false, nil
	default:
		return false, fmt.Errorf("shutdownevent: unexpected wait result %d for event %q", result, name)
	}
}
