// Package metrics records engine activity as Prometheus metrics and can
// export them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/pireduce/internal/sysmon"
)

// Recorder receives engine lifecycle events.
type Recorder interface {
	WorkerSpawned(mode string)
	WorkerFinished(mode string, d time.Duration, err error)
	SolveFinished(mode string, d time.Duration, err error)
}

// NopRecorder ignores every event.
type NopRecorder struct{}

func (NopRecorder) WorkerSpawned(string)                        {}
func (NopRecorder) WorkerFinished(string, time.Duration, error) {}
func (NopRecorder) SolveFinished(string, time.Duration, error)  {}

// Prometheus is a Recorder backed by a private Prometheus registry.
type Prometheus struct {
	registry *prometheus.Registry
	memory   *MemoryCollector

	workersSpawned *prometheus.CounterVec
	workersFailed  *prometheus.CounterVec
	workerDuration *prometheus.HistogramVec
	solves         *prometheus.CounterVec
	solveDuration  *prometheus.HistogramVec
	heapAllocBytes prometheus.Gauge
	gcCycles       prometheus.Gauge
	gcPauseSeconds prometheus.Gauge
	hostCPUPercent prometheus.Gauge
	hostMemPercent prometheus.Gauge
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates a recorder with its own registry, including the Go
// runtime and process collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		memory:   NewMemoryCollector(),
		workersSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pireduce_workers_spawned_total",
			Help: "Workers launched by the coordinator.",
		}, []string{"mode"}),
		workersFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pireduce_workers_failed_total",
			Help: "Workers that terminated without storing a result.",
		}, []string{"mode"}),
		workerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pireduce_worker_duration_seconds",
			Help:    "Wall time from worker launch to observed termination.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"mode"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pireduce_solves_total",
			Help: "Completed solve calls by outcome.",
		}, []string{"mode", "outcome"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pireduce_solve_duration_seconds",
			Help:    "Wall time of a full solve, spawn through join.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"mode"}),
		heapAllocBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pireduce_parent_heap_alloc_bytes",
			Help: "Heap bytes in use by the coordinating process.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pireduce_parent_gc_cycles",
			Help: "Completed GC cycles in the coordinating process.",
		}),
		gcPauseSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pireduce_parent_gc_pause_seconds",
			Help: "Cumulative GC pause time in the coordinating process.",
		}),
		hostCPUPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pireduce_host_cpu_percent",
			Help: "System-wide CPU usage averaged over the last solve.",
		}),
		hostMemPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pireduce_host_memory_percent",
			Help: "System-wide memory usage at the end of the last solve.",
		}),
	}
	p.registry.MustRegister(
		p.workersSpawned, p.workersFailed, p.workerDuration,
		p.solves, p.solveDuration,
		p.heapAllocBytes, p.gcCycles, p.gcPauseSeconds,
		p.hostCPUPercent, p.hostMemPercent,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Registry exposes the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) WorkerSpawned(mode string) {
	p.workersSpawned.WithLabelValues(mode).Inc()
}

func (p *Prometheus) WorkerFinished(mode string, d time.Duration, err error) {
	p.workerDuration.WithLabelValues(mode).Observe(d.Seconds())
	if err != nil {
		p.workersFailed.WithLabelValues(mode).Inc()
	}
}

func (p *Prometheus) SolveFinished(mode string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	p.solves.WithLabelValues(mode, outcome).Inc()
	p.solveDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordHost stores a system-wide usage sample.
func (p *Prometheus) RecordHost(s sysmon.Stats) {
	p.hostCPUPercent.Set(s.CPUPercent)
	p.hostMemPercent.Set(s.MemPercent)
}

func (p *Prometheus) recordMemory() {
	snap := p.memory.Snapshot()
	p.heapAllocBytes.Set(float64(snap.HeapAlloc))
	p.gcCycles.Set(float64(snap.NumGC))
	p.gcPauseSeconds.Set(float64(snap.PauseTotalNs) / 1e9)
}

// WriteTextfile samples parent memory and writes every metric to path in the
// Prometheus text exposition format.
func (p *Prometheus) WriteTextfile(path string) error {
	p.recordMemory()
	return prometheus.WriteToTextfile(path, p.registry)
}
