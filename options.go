package sindexes

import (
	"log/slog"

	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/internal/resource"
	"github.com/Alessio-Campa/s-indexes/intersect"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	compression      encoding.Compression
	pool             *intersect.ScratchPool
	builderOptions   []func(*encoding.BuilderOptions)
	resources        resource.Config
	failFast         bool
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sindexes.BasicMetricsCollector{}
//	eng := sindexes.New(sindexes.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Intersections: %d, Avg latency: %dns\n", stats.IntersectCount, stats.IntersectAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sindexes.NewJSONLogger(slog.LevelInfo)
//	eng := sindexes.New(sindexes.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithWorkers bounds the concurrency of IntersectBatch.
// Values <= 0 use runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCompression selects the compression Marshal applies.
// Unmarshal detects the compression from the data itself.
func WithCompression(c encoding.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithScratchPool shares a scratch pool between engines.
// If nil is passed, the engine allocates its own.
func WithScratchPool(p *intersect.ScratchPool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithChunkPolicy overrides the representation Encode picks for each chunk.
//
// Example forcing every chunk into a bitmap:
//
//	eng := sindexes.New(sindexes.WithChunkPolicy(func(id uint16, card int) encoding.Kind {
//	    if card == encoding.ChunkSize {
//	        return encoding.Full
//	    }
//	    return encoding.Dense
//	}))
func WithChunkPolicy(p encoding.ChunkPolicy) Option {
	return func(o *options) {
		if p == nil {
			return
		}
		o.builderOptions = append(o.builderOptions, func(bo *encoding.BuilderOptions) {
			bo.ChunkPolicy = p
		})
	}
}

// WithMemoryLimit bounds the output and scratch memory of in-flight
// Intersect and Count calls. Calls block until memory is available or their
// context is done; a single call needing more than the whole limit fails
// with ErrMemoryLimit. 0 disables the limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.resources.MemoryLimitBytes = bytes
	}
}

// WithMaxConcurrent bounds the number of Intersect, Count and
// IntersectBatch calls running at once. 0 means unlimited.
func WithMaxConcurrent(n int64) Option {
	return func(o *options) {
		o.resources.MaxConcurrent = n
	}
}

// WithFailFast makes Intersect, Count and IntersectBatch return ErrBusy
// when no concurrency slot is free, and ErrMemoryLimit when the memory
// limit is currently exhausted, instead of waiting.
func WithFailFast() Option {
	return func(o *options) {
		o.failFast = true
	}
}

// WithDecodeRateLimit throttles ReadSet to the given input bytes per
// second. 0 means unlimited.
func WithDecodeRateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.resources.DecodeBytesPerSec = bytesPerSec
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		compression:      encoding.None,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.pool == nil {
		o.pool = intersect.NewScratchPool()
	}
	return o
}
