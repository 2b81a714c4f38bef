// Package sysmon samples system-wide CPU and memory usage around a solve.
package sysmon

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	// Window is the wall time the CPU figure was averaged over. Zero for a
	// standalone Sample.
	Window time.Duration
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Window measures average CPU usage between Begin and End. Workers of the
// process backend are separate processes, so only system-wide counters see
// their load.
type Window struct {
	start time.Time
}

// Begin primes the CPU delta and starts a window.
func Begin() Window {
	_, _ = cpu.Percent(0, false)
	return Window{start: time.Now()}
}

// End returns CPU usage averaged since Begin and the current memory usage.
func (w Window) End() Stats {
	s := Sample()
	s.Window = time.Since(w.start)
	return s
}
