package watchdog

import "sync"

// Default/SetDefault implement the process-wide singleton most embedding
// applications actually want: one watchdog per process, reachable from
// anywhere without threading a *Client through every call site. Mirrors
// the package-level singleton pattern this repository's events logging
// package also uses.
var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// SetDefault installs c as the process-wide watchdog client.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

// Default returns the process-wide watchdog client, constructing one with
// New() and installing it on first use.
func Default() *Client {
	defaultMu.RLock()
	c := defaultClient
	defaultMu.RUnlock()
	if c != nil {
		return c
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		defaultClient = New()
	}
	return defaultClient
}
