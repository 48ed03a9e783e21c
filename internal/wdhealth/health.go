// Package wdhealth is the gopsutil-backed watchdog.HealthSnapshotter this
// repository wires in, adapted from the process resource sampling in the
// teacher's cmd/agent.
package wdhealth

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessInfo is a best-effort snapshot of the embedding process's
// resource usage, attached to the log line emitted when a task timeout
// latches.
type ProcessInfo struct {
	RSSBytes   uint64
	CPUPercent float64
	NumFDs     int32
	NumThreads int32
}

// AsMap renders the snapshot as log attributes.
func (p ProcessInfo) AsMap() map[string]any {
	return map[string]any{
		"rss_bytes":   p.RSSBytes,
		"cpu_percent": p.CPUPercent,
		"num_fds":     p.NumFDs,
		"num_threads": p.NumThreads,
	}
}

// Snapshotter captures ProcessInfo for the current process.
type Snapshotter struct{}

// NewSnapshotter returns a Snapshotter for the current process.
func NewSnapshotter() *Snapshotter {
	return &Snapshotter{}
}

// ProcessInfo gathers a fresh resource snapshot. Individual gopsutil
// queries that fail (NumFDs is unsupported on some platforms) are
// tolerated and leave their field at the zero value; only a failure to
// even open the process handle is a hard error.
func (s *Snapshotter) ProcessInfo() (ProcessInfo, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessInfo{}, fmt.Errorf("wdhealth: open self process: %w", err)
	}

	var info ProcessInfo

	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		info.RSSBytes = mem.RSS
	}
	if cpuPct, err := proc.CPUPercent(); err == nil {
		info.CPUPercent = cpuPct
	}
	if fds, err := proc.NumFDs(); err == nil {
		info.NumFDs = fds
	}
	if threads, err := proc.NumThreads(); err == nil {
		info.NumThreads = threads
	}

	return info, nil
}

// Snapshot implements watchdog.HealthSnapshotter.
func (s *Snapshotter) Snapshot() (map[string]any, error) {
	info, err := s.ProcessInfo()
	if err != nil {
		return nil, err
	}
	return info.AsMap(), nil
}
