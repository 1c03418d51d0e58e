package sindexes

import (
	"context"
	"fmt"
	"time"

	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/setstore"
)

// Save marshals s and stores it under name.
func (e *Engine) Save(ctx context.Context, store setstore.Store, name string, s *encoding.Set) error {
	data, err := e.Marshal(s)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	return nil
}

// Load fetches the set stored under name and decodes it. The fetched bytes
// are charged against WithDecodeRateLimit before decoding.
func (e *Engine) Load(ctx context.Context, store setstore.Store, name string) (*encoding.Set, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	if err := e.rc.AcquireDecode(ctx, len(data)); err != nil {
		return nil, err
	}
	return e.decode(ctx, data, start)
}
