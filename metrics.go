package sindexes

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
//	    intersectCounter   prometheus.Counter
//	    intersectHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordIntersect(results int, duration time.Duration, err error) {
//	    p.intersectCounter.Inc()
//	    p.intersectHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordIntersect is called after each pairwise intersection or count.
	// results is the intersection cardinality, err is nil if successful.
	RecordIntersect(results int, duration time.Duration, err error)

	// RecordBatch is called after each batch intersection.
	// pairs is the number of pairs submitted.
	RecordBatch(pairs int, duration time.Duration, err error)

	// RecordEncode is called after building a set from keys.
	RecordEncode(keys int, duration time.Duration, err error)

	// RecordDecode is called after each Unmarshal.
	// size is the length of the serialized input in bytes.
	RecordDecode(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIntersect(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordEncode(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordDecode(int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IntersectCount      atomic.Int64
	IntersectErrors     atomic.Int64
	IntersectResults    atomic.Int64
	IntersectTotalNanos atomic.Int64
	BatchCount          atomic.Int64
	BatchPairs          atomic.Int64
	BatchErrors         atomic.Int64
	EncodeCount         atomic.Int64
	EncodeKeys          atomic.Int64
	EncodeErrors        atomic.Int64
	DecodeCount         atomic.Int64
	DecodeBytes         atomic.Int64
	DecodeErrors        atomic.Int64
}

// RecordIntersect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIntersect(results int, duration time.Duration, err error) {
	b.IntersectCount.Add(1)
	b.IntersectTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IntersectErrors.Add(1)
		return
	}
	b.IntersectResults.Add(int64(results))
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(pairs int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchPairs.Add(int64(pairs))
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(keys int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeKeys.Add(int64(keys))
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(size int, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeBytes.Add(int64(size))
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IntersectCount:    b.IntersectCount.Load(),
		IntersectErrors:   b.IntersectErrors.Load(),
		IntersectResults:  b.IntersectResults.Load(),
		IntersectAvgNanos: b.getAvgIntersectNanos(),
		BatchCount:        b.BatchCount.Load(),
		BatchPairs:        b.BatchPairs.Load(),
		BatchErrors:       b.BatchErrors.Load(),
		EncodeCount:       b.EncodeCount.Load(),
		EncodeKeys:        b.EncodeKeys.Load(),
		EncodeErrors:      b.EncodeErrors.Load(),
		DecodeCount:       b.DecodeCount.Load(),
		DecodeBytes:       b.DecodeBytes.Load(),
		DecodeErrors:      b.DecodeErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgIntersectNanos() int64 {
	count := b.IntersectCount.Load()
	if count == 0 {
		return 0
	}
	return b.IntersectTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	IntersectCount    int64
	IntersectErrors   int64
	IntersectResults  int64
	IntersectAvgNanos int64
	BatchCount        int64
	BatchPairs        int64
	BatchErrors       int64
	EncodeCount       int64
	EncodeKeys        int64
	EncodeErrors      int64
	DecodeCount       int64
	DecodeBytes       int64
	DecodeErrors      int64
}
