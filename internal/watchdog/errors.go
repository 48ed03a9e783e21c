package watchdog

import "errors"

// ErrAlreadyStopped is returned by Start when the client has already been
// stopped and not re-initialized. This is the one caller-visible failure
// mode the spec calls out as "lifecycle misuse raises a fatal condition to
// the caller" — everything else degrades silently.
var ErrAlreadyStopped = errors.New("watchdog: client already stopped, call Initialize before starting again")
