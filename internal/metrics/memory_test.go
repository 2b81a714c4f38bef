package metrics

import (
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys < snap.HeapAlloc {
		t.Errorf("Sys (%d) should cover HeapAlloc (%d)", snap.Sys, snap.HeapAlloc)
	}
}

// TestPrometheus_RecordMemory checks that the parent gauges are filled from
// the collector when metrics are exported.
func TestPrometheus_RecordMemory(t *testing.T) {
	t.Parallel()

	p := NewPrometheus()
	if got := testutil.ToFloat64(p.heapAllocBytes); got != 0 {
		t.Fatalf("heap gauge should start at 0, got %v", got)
	}
	p.recordMemory()
	if got := testutil.ToFloat64(p.heapAllocBytes); got <= 0 {
		t.Errorf("heap gauge = %v, want > 0", got)
	}
	if got := testutil.ToFloat64(p.gcPauseSeconds); got < 0 {
		t.Errorf("gc pause gauge = %v, want >= 0", got)
	}
}

func TestMemoryCollector_UsesReader(t *testing.T) {
	t.Parallel()

	mc := &MemoryCollector{read: func(m *runtime.MemStats) {
		m.HeapAlloc, m.Sys, m.NumGC, m.PauseTotalNs = 10, 20, 3, 4_000_000
	}}
	want := MemorySnapshot{HeapAlloc: 10, Sys: 20, NumGC: 3, PauseTotalNs: 4_000_000}
	if got := mc.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}
