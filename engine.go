package sindexes

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/internal/resource"
	"github.com/Alessio-Campa/s-indexes/internal/simd"
	"github.com/Alessio-Campa/s-indexes/intersect"
)

const (
	// bitmapBytes is the size of the scratch bitmap every call may touch.
	bitmapBytes = 8 * encoding.ChunkBitmapWords
	// countBytes adds the chunk key buffer Count uses for sparse pairs.
	countBytes = bitmapBytes + 4*(encoding.ChunkSize+encoding.OutputSlack)
)

// Engine intersects encoded sets with pooled scratch memory, logging and
// metrics. It is safe for concurrent use.
type Engine struct {
	opts    options
	logger  *Logger
	metrics MetricsCollector
	pool    *intersect.ScratchPool
	rc      *resource.Controller
	closed  atomic.Bool
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	e := &Engine{
		opts:    o,
		logger:  o.logger.WithComponent("engine"),
		metrics: o.metricsCollector,
		pool:    o.pool,
		rc:      resource.NewController(o.resources),
	}
	e.logger.Debug("engine created",
		"simd", simd.ActiveISA().String(),
		"compression", o.compression.String(),
		"workers", o.workers,
		"memory_limit", o.resources.MemoryLimitBytes,
	)
	return e
}

// admit reserves a concurrency slot and bytes of working memory. The
// returned func releases both.
func (e *Engine) admit(ctx context.Context, bytes int64) (func(), error) {
	if limit := e.rc.MemoryLimit(); limit > 0 && bytes > limit {
		return nil, fmt.Errorf("%w: need %d bytes, limit %d", ErrMemoryLimit, bytes, limit)
	}
	if e.opts.failFast {
		return e.tryAdmit(bytes)
	}
	if err := e.rc.AcquireSlot(ctx); err != nil {
		return nil, err
	}
	if err := e.rc.AcquireMemory(ctx, bytes); err != nil {
		e.rc.ReleaseSlot()
		return nil, err
	}
	return e.releaser(bytes), nil
}

func (e *Engine) tryAdmit(bytes int64) (func(), error) {
	if !e.rc.TryAcquireSlot() {
		return nil, ErrBusy
	}
	if !e.rc.TryAcquireMemory(bytes) {
		e.rc.ReleaseSlot()
		return nil, fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrMemoryLimit, bytes, e.rc.MemoryUsage(), e.rc.MemoryLimit())
	}
	return e.releaser(bytes), nil
}

func (e *Engine) releaser(bytes int64) func() {
	return func() {
		e.rc.ReleaseMemory(bytes)
		e.rc.ReleaseSlot()
	}
}

// MemoryUsage returns the working memory currently reserved by in-flight
// calls. It is 0 when no memory limit is set.
func (e *Engine) MemoryUsage() int64 {
	return e.rc.MemoryUsage()
}

// BufferSize returns an output length always sufficient for IntersectInto.
func BufferSize(l, r *encoding.Set) int {
	return intersect.BufferSize(orEmpty(l), orEmpty(r))
}

// Intersect returns the keys present in both l and r, ascending.
// A nil set is treated as empty.
func (e *Engine) Intersect(ctx context.Context, l, r *encoding.Set) ([]uint32, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	l, r = orEmpty(l), orEmpty(r)

	release, err := e.admit(ctx, 4*int64(intersect.BufferSize(l, r))+bitmapBytes)
	if err != nil {
		e.metrics.RecordIntersect(0, time.Since(start), err)
		return nil, err
	}
	defer release()

	s := e.pool.Get()
	defer e.pool.Put(s)

	var keys []uint32
	err = translateError(intersect.Protect(func() {
		keys = intersect.Into(l, r, s)
	}))
	if err != nil {
		keys = nil
	}
	e.metrics.RecordIntersect(len(keys), time.Since(start), err)
	e.logger.LogIntersect(ctx, l.Cardinality(), r.Cardinality(), len(keys), err)
	return keys, err
}

// IntersectInto writes the intersection of l and r to out and returns the
// number of keys written. out must hold at least BufferSize(l, r) elements.
// IntersectInto allocates nothing and bypasses the memory and concurrency
// limits.
func (e *Engine) IntersectInto(l, r *encoding.Set, out []uint32) (int, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	start := time.Now()
	l, r = orEmpty(l), orEmpty(r)

	if need := intersect.BufferSize(l, r); len(out) < need {
		err := &ErrBufferSize{Need: need, Have: len(out)}
		e.metrics.RecordIntersect(0, time.Since(start), err)
		return 0, err
	}

	s := e.pool.Get()
	defer e.pool.Put(s)

	var n int
	err := translateError(intersect.Protect(func() {
		n = intersect.Sets(l, r, out, s)
	}))
	e.metrics.RecordIntersect(n, time.Since(start), err)
	return n, err
}

// Count returns the cardinality of the intersection of l and r without
// materializing it.
func (e *Engine) Count(ctx context.Context, l, r *encoding.Set) (uint64, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	start := time.Now()
	l, r = orEmpty(l), orEmpty(r)

	release, err := e.admit(ctx, countBytes)
	if err != nil {
		e.metrics.RecordIntersect(0, time.Since(start), err)
		return 0, err
	}
	defer release()

	s := e.pool.Get()
	defer e.pool.Put(s)

	var n uint64
	err = translateError(intersect.Protect(func() {
		n = intersect.CountSets(l, r, s)
	}))
	e.metrics.RecordIntersect(int(n), time.Since(start), err)
	e.logger.LogIntersect(ctx, l.Cardinality(), r.Cardinality(), int(n), err)
	return n, err
}

// IntersectBatch intersects every pair concurrently, bounded by
// WithWorkers, and returns the results in pair order.
func (e *Engine) IntersectBatch(ctx context.Context, pairs []intersect.Pair) ([][]uint32, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()

	normalized := make([]intersect.Pair, len(pairs))
	bytes := int64(bitmapBytes)
	for i, p := range pairs {
		normalized[i] = intersect.Pair{Left: orEmpty(p.Left), Right: orEmpty(p.Right)}
		bytes += 4 * int64(intersect.BufferSize(normalized[i].Left, normalized[i].Right))
	}

	release, err := e.admit(ctx, bytes)
	if err != nil {
		e.metrics.RecordBatch(len(pairs), time.Since(start), err)
		e.logger.LogBatch(ctx, len(pairs), e.opts.workers, err)
		return nil, err
	}
	defer release()

	results, err := intersect.IntersectBatch(ctx, normalized, func(o *intersect.BatchOptions) {
		o.Workers = e.opts.workers
		o.Pool = e.pool
	})
	err = translateError(err)
	e.metrics.RecordBatch(len(pairs), time.Since(start), err)
	e.logger.LogBatch(ctx, len(pairs), e.opts.workers, err)
	return results, err
}

// Encode builds a set from ascending keys. Duplicates are ignored.
func (e *Engine) Encode(keys []uint32) (*encoding.Set, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	s, err := encoding.FromSorted(keys, e.opts.builderOptions...)
	err = translateError(err)
	e.metrics.RecordEncode(len(keys), time.Since(start), err)
	return s, err
}

// Marshal serializes s with the configured compression.
func (e *Engine) Marshal(s *encoding.Set) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	return encoding.Marshal(orEmpty(s), e.opts.compression)
}

// Unmarshal decodes and validates a set produced by Marshal.
func (e *Engine) Unmarshal(data []byte) (*encoding.Set, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	return e.decode(context.Background(), data, time.Now())
}

// WriteSet marshals s and writes it to w.
func (e *Engine) WriteSet(w io.Writer, s *encoding.Set) (int64, error) {
	data, err := e.Marshal(s)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadSet reads a set written by WriteSet from r, throttled by
// WithDecodeRateLimit. r is read to EOF.
func (e *Engine) ReadSet(ctx context.Context, r io.Reader) (*encoding.Set, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, r, e.rc))
	if err != nil {
		e.metrics.RecordDecode(len(data), time.Since(start), err)
		e.logger.LogDecode(ctx, len(data), 0, err)
		return nil, err
	}
	return e.decode(ctx, data, start)
}

func (e *Engine) decode(ctx context.Context, data []byte, start time.Time) (*encoding.Set, error) {
	s, err := encoding.Unmarshal(data)
	e.metrics.RecordDecode(len(data), time.Since(start), err)

	chunks := 0
	if err == nil {
		chunks = s.Chunks()
	}
	e.logger.LogDecode(ctx, len(data), chunks, err)
	return s, err
}

func orEmpty(s *encoding.Set) *encoding.Set {
	if s == nil {
		return encoding.Empty()
	}
	return s
}
