package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes bounds the working memory of in-flight intersections.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrent bounds the number of intersections running at once.
	// If 0, unlimited.
	MaxConcurrent int64

	// DecodeBytesPerSec is the maximum throughput of rate-limited readers.
	// If 0, unlimited.
	DecodeBytesPerSec int64
}

// Controller manages engine-wide resources (memory, concurrency, decode throughput).
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	slots *semaphore.Weighted // nil if unlimited

	// Decode
	decodeLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.MaxConcurrent > 0 {
		c.slots = semaphore.NewWeighted(cfg.MaxConcurrent)
	}

	if cfg.DecodeBytesPerSec > 0 {
		c.decodeLimiter = rate.NewLimiter(rate.Limit(cfg.DecodeBytesPerSec), int(cfg.DecodeBytesPerSec))
	}

	return c
}

// MemoryLimit returns the configured memory limit, 0 if unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireSlot reserves a concurrency slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireSlot(ctx context.Context) error {
	if c == nil || c.slots == nil {
		return nil
	}
	return c.slots.Acquire(ctx, 1)
}

// TryAcquireSlot attempts to reserve a concurrency slot without blocking.
func (c *Controller) TryAcquireSlot() bool {
	if c == nil || c.slots == nil {
		return true
	}
	return c.slots.TryAcquire(1)
}

// ReleaseSlot releases a concurrency slot.
func (c *Controller) ReleaseSlot() {
	if c == nil || c.slots == nil {
		return
	}
	c.slots.Release(1)
}

// AcquireDecode waits until the decode limit allows the specified number of bytes.
// Requests larger than one second of budget are split into burst-sized waits.
func (c *Controller) AcquireDecode(ctx context.Context, bytes int) error {
	if c == nil || c.decodeLimiter == nil {
		return nil
	}
	burst := c.decodeLimiter.Burst()
	for bytes > 0 {
		n := min(bytes, burst)
		if err := c.decodeLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
