package inplace

import "sync/atomic"

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// A collector shared by several vectors is called from whichever goroutines
// use them, so implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordCapacityExceeded is called when op is rejected because the
	// vector is full.
	RecordCapacityExceeded(op string)

	// RecordElementFailure is called when op is aborted by an element copy,
	// move or constructor error.
	RecordElementFailure(op string, err error)

	// RecordRelocations is called after a positional insert with the number
	// of elements moved to open and close the gap.
	RecordRelocations(op string, n int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCapacityExceeded(string)      {}
func (NoopMetricsCollector) RecordElementFailure(string, error) {}
func (NoopMetricsCollector) RecordRelocations(string, int)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CapacityExceeded atomic.Int64
	ElementFailures  atomic.Int64
	Inserts          atomic.Int64
	Relocations      atomic.Int64
}

// RecordCapacityExceeded implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCapacityExceeded(string) {
	b.CapacityExceeded.Add(1)
}

// RecordElementFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordElementFailure(string, error) {
	b.ElementFailures.Add(1)
}

// RecordRelocations implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelocations(_ string, n int) {
	b.Inserts.Add(1)
	b.Relocations.Add(int64(n))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	inserts := b.Inserts.Load()
	relocations := b.Relocations.Load()
	var avg float64
	if inserts > 0 {
		avg = float64(relocations) / float64(inserts)
	}
	return BasicMetricsStats{
		CapacityExceeded: b.CapacityExceeded.Load(),
		ElementFailures:  b.ElementFailures.Load(),
		Inserts:          inserts,
		Relocations:      relocations,
		AvgRelocations:   avg,
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CapacityExceeded int64
	ElementFailures  int64
	Inserts          int64
	Relocations      int64
	AvgRelocations   float64
}
