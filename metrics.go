package gridmem

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    allocCounter    prometheus.Counter
//	    resizeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAlloc(bytes uint64, duration time.Duration, err error) {
//	    p.allocCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAlloc is called after each allocation.
	// bytes is the data-buffer size, err is nil if successful.
	RecordAlloc(bytes uint64, duration time.Duration, err error)

	// RecordResize is called after each resize operation.
	RecordResize(bytes uint64, duration time.Duration, err error)

	// RecordCopy is called after each bulk copy.
	RecordCopy(bytes uint64, duration time.Duration, err error)

	// RecordFree is called after each release.
	RecordFree(bytes uint64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlloc(uint64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordResize(uint64, time.Duration, error) {}
func (NoopMetricsCollector) RecordCopy(uint64, time.Duration, error)   {}
func (NoopMetricsCollector) RecordFree(uint64)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount       atomic.Int64
	AllocErrors      atomic.Int64
	AllocBytes       atomic.Int64
	AllocTotalNanos  atomic.Int64
	ResizeCount      atomic.Int64
	ResizeErrors     atomic.Int64
	ResizeTotalNanos atomic.Int64
	CopyCount        atomic.Int64
	CopyErrors       atomic.Int64
	FreeCount        atomic.Int64
	FreedBytes       atomic.Int64
}

// RecordAlloc implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAlloc(bytes uint64, duration time.Duration, err error) {
	b.AllocCount.Add(1)
	b.AllocTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	b.AllocBytes.Add(int64(bytes)) //nolint:gosec // bytes bounded by int via conv checks
}

// RecordResize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResize(bytes uint64, duration time.Duration, err error) {
	b.ResizeCount.Add(1)
	b.ResizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ResizeErrors.Add(1)
	}
}

// RecordCopy implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCopy(bytes uint64, duration time.Duration, err error) {
	b.CopyCount.Add(1)
	if err != nil {
		b.CopyErrors.Add(1)
	}
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(bytes uint64) {
	b.FreeCount.Add(1)
	b.FreedBytes.Add(int64(bytes)) //nolint:gosec // bytes bounded by int via conv checks
}
