package watchdog

import "time"

// Clock produces a non-decreasing integer millisecond timestamp. A pure
// leaf dependency: the core never reads wall-clock time directly.
type Clock interface {
	NowMs() int64
}

type monotonicClock struct {
	start time.Time
}

// NewMonotonicClock returns a Clock anchored to the moment it is created.
// NowMs is derived from time.Since rather than time.Now().UnixMilli(), so
// it never decreases even if the wall clock is adjusted backwards.
func NewMonotonicClock() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) NowMs() int64 {
	return time.Since(c.start).Milliseconds()
}
