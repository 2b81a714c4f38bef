package metrics

import "runtime"

// MemorySnapshot is a reading of the coordinating process's runtime memory.
// Worker processes are not included; each has its own runtime.
type MemorySnapshot struct {
	HeapAlloc    uint64
	Sys          uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics for the parent gauges.
type MemoryCollector struct {
	read func(*runtime.MemStats)
}

// NewMemoryCollector returns a collector over runtime.ReadMemStats.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{read: runtime.ReadMemStats}
}

// Snapshot stops the world briefly to read the current statistics, so it is
// taken once per export rather than per worker event.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	mc.read(&m)
	return MemorySnapshot{HeapAlloc: m.HeapAlloc, Sys: m.Sys, NumGC: m.NumGC, PauseTotalNs: m.PauseTotalNs}
}
