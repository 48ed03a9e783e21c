package watchdog

// assertLog logs a critical message when condition is false; it never
// aborts the process. This is the only place the scheduler calls out to
// logging while holding the registry lock in the original implementation,
// which is why that implementation needs a reentrant lock. This port
// avoids the requirement entirely: assertLog never touches the registry,
// so a plain sync.Mutex is safe (see registry.go and SPEC_FULL.md §5).
func (c *Client) assertLog(condition bool, where string) {
	if !condition {
		c.ev.LogInvariantViolation(where)
	}
}
