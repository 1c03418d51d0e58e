package sindexes

import (
	"errors"
	"fmt"

	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/intersect"
)

var (
	// ErrUnsorted is returned when keys passed to Encode are not ascending.
	ErrUnsorted = encoding.ErrUnsorted

	// ErrCorrupt is returned when serialized data fails validation.
	ErrCorrupt = encoding.ErrCorrupt

	// ErrBufferTooSmall is returned when an output buffer cannot hold the
	// worst-case intersection.
	ErrBufferTooSmall = errors.New("output buffer too small")

	// ErrInvalidInput is returned when a set violates the encoding
	// invariants the intersection kernels rely on.
	ErrInvalidInput = errors.New("invalid encoded set")

	// ErrMemoryLimit is returned when a single call needs more working
	// memory than the configured limit, or, with WithFailFast, more than
	// is currently free.
	ErrMemoryLimit = errors.New("memory limit exceeded")

	// ErrBusy is returned by a fail-fast Engine when every concurrency slot
	// is taken.
	ErrBusy = errors.New("engine busy")

	// ErrClosed is returned by every operation on a closed Engine.
	ErrClosed = errors.New("engine closed")
)

// ErrBufferSize indicates an output buffer shorter than BufferSize.
//
// errors.Is(err, ErrBufferTooSmall) holds for every ErrBufferSize.
type ErrBufferSize struct {
	Need int
	Have int
}

func (e *ErrBufferSize) Error() string {
	return fmt.Sprintf("output buffer too small: need %d, have %d", e.Need, e.Have)
}

func (e *ErrBufferSize) Unwrap() error { return ErrBufferTooSmall }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Kernel preconditions.
	var card *encoding.ErrInvalidCardinality
	if errors.As(err, &card) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var pair *intersect.ErrInvalidPair
	if errors.As(err, &pair) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var blocks *intersect.ErrInvalidBlockCount
	if errors.As(err, &blocks) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, encoding.ErrInvalidChunkKind) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return err
}
