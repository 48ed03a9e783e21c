package watchdog

import "sync"

// FarFuture is the sentinel "distant future" deadline used when the task
// map is empty or when every remaining deadline has already been consumed
// this tick. It mirrors the original client's DISTANT_FUTURE constant.
const FarFuture int64 = 0x7fffffff

// Registry is the concurrent map from task name to deadline (absolute
// monotonic-clock milliseconds) plus the set of latched timed-out task
// names. All mutation happens under mu; see assert.go for why a plain
// (non-reentrant) sync.Mutex is sufficient here.
type Registry struct {
	mu        sync.Mutex
	tasks     map[string]int64
	timedOut  map[string]struct{}
	nextCheck int64
}

func newRegistry() *Registry {
	return &Registry{
		tasks:     make(map[string]int64),
		timedOut:  make(map[string]struct{}),
		nextCheck: FarFuture,
	}
}

// setDeadline installs an absolute deadline for name, overwriting any
// existing one unconditionally — the most recent ping always wins, and
// deadlines may move backwards. It does not consult or mutate the
// timed-out set: a name already latched as timed out may still reappear
// in the task map (see Client.Ping).
// Returns whether the new deadline moved earlier than the cached
// next-check time, in which case the caller must wake the scheduler.
func (r *Registry) setDeadline(name string, deadlineMs int64) (doTrigger bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[name] = deadlineMs
	return deadlineMs < r.nextCheck
}

// close removes name from the task map if present. Missing names are
// silently ignored; the timed-out set is never touched.
func (r *Registry) close(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, name)
}

// taskNames returns a snapshot of the current task map's keys, stable
// against concurrent mutation.
func (r *Registry) taskNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	return names
}

// has reports whether name currently has a registered deadline.
func (r *Registry) has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[name]
	return ok
}

// count returns the number of currently monitored tasks.
func (r *Registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// hasTimedOut reports whether the timed-out set is non-empty.
func (r *Registry) hasTimedOut() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timedOut) > 0
}

// timedOutNames returns a snapshot of every task name latched into the
// timed-out set so far this lifecycle.
func (r *Registry) timedOutNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.timedOut))
	for name := range r.timedOut {
		names = append(names, name)
	}
	return names
}

// nextCheckSnapshot reads the cached earliest-deadline value.
func (r *Registry) nextCheckSnapshot() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextCheck
}

// reset clears all runtime state: used by Initialize after a prior Stop so
// the client can start again from a clean slate (mostly for tests).
func (r *Registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = make(map[string]int64)
	r.timedOut = make(map[string]struct{})
	r.nextCheck = FarFuture
}

// tickResult reports what a single scheduler pass observed.
type tickResult struct {
	timeoutDetected bool
	heartbeatDue    bool
}

// tick performs one scheduler pass: it recomputes nextCheck, latches any
// task whose deadline has passed into the timed-out set (removing it and,
// on first detection, the heartbeat task, from the task map), and
// reschedules the heartbeat task's deadline when it comes due and no
// timeout has been detected yet this pass. heartbeatName may be empty, in
// which case no task ever matches it; the scheduler always passes the
// client's fixed heartbeat name, which is simply absent from the task map
// while UDP pinging is inactive.
//
// This is the direct Go translation of the original client's
// background_loop critical section; see DESIGN.md for the line-by-line
// grounding in the Python source.
func (r *Registry) tick(now int64, heartbeatName string, udpPingIntervalMs int64) tickResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextCheck = FarFuture
	var result tickResult

	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}

	for _, name := range names {
		dl, ok := r.tasks[name]
		if !ok {
			// Removed earlier in this same pass: either a prior name's
			// timeout latch deleted the heartbeat task (see below), or a
			// concurrent close raced this tick. Either way, skip it.
			continue
		}

		if dl <= now {
			if heartbeatName != "" && name == heartbeatName {
				if !result.timeoutDetected {
					dl = now + udpPingIntervalMs
					r.tasks[heartbeatName] = dl
					result.heartbeatDue = true
				}
			} else {
				if _, already := r.timedOut[name]; !already {
					r.timedOut[name] = struct{}{}
					result.timeoutDetected = true
					delete(r.tasks, name)
					if heartbeatName != "" {
						delete(r.tasks, heartbeatName)
					}
				}
				// Whether newly latched or already timed out, this
				// deadline is never a next-check candidate.
				continue
			}
		}

		if dl > now && dl < r.nextCheck {
			r.nextCheck = dl
		}
	}

	return result
}
