package intersect

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Alessio-Campa/s-indexes/encoding"
)

// Pair is one independent intersection job.
type Pair struct {
	Left, Right *encoding.Set
}

// BatchOptions configures IntersectBatch.
type BatchOptions struct {
	// Workers bounds the number of concurrent intersections.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
	// Pool supplies per-worker scratch buffers. Nil means a private pool.
	Pool *ScratchPool
}

// IntersectBatch intersects every pair concurrently and returns the results
// in pair order. Cancelling ctx stops scheduling pairs that have not
// started; a precondition panic in any pair aborts the batch with its error.
func IntersectBatch(ctx context.Context, pairs []Pair, optFns ...func(o *BatchOptions)) ([][]uint32, error) {
	opts := BatchOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Pool == nil {
		opts.Pool = NewScratchPool()
	}

	results := make([][]uint32, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s := opts.Pool.Get()
			defer opts.Pool.Put(s)
			return Protect(func() {
				results[i] = Into(pairs[i].Left, pairs[i].Right, s)
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
