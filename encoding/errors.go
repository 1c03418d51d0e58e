package encoding

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsorted is returned when keys are not added in ascending order.
	ErrUnsorted = errors.New("encoding: keys must be added in ascending order")

	// ErrCorrupt is the sentinel wrapped by every decoding failure.
	ErrCorrupt = errors.New("encoding: corrupt set")

	// ErrInvalidChunkKind is returned when a forced chunk kind cannot hold the chunk.
	ErrInvalidChunkKind = errors.New("encoding: chunk kind cannot represent cardinality")
)

// ErrInvalidCardinality reports a cardinality outside the valid range of its
// granularity or representation. Intersection kernels panic with it.
type ErrInvalidCardinality struct {
	Granularity Granularity
	Cardinality int
}

func (e *ErrInvalidCardinality) Error() string {
	return fmt.Sprintf("invalid %s cardinality: %d", e.Granularity, e.Cardinality)
}

// ErrCorruptChunk reports a structural defect in an encoded chunk.
//
// errors.Is(err, ErrCorrupt) holds for every ErrCorruptChunk.
type ErrCorruptChunk struct {
	Index  int
	ID     uint16
	Reason string
}

func (e *ErrCorruptChunk) Error() string {
	return fmt.Sprintf("corrupt chunk #%d (id %d): %s", e.Index, e.ID, e.Reason)
}

func (e *ErrCorruptChunk) Unwrap() error { return ErrCorrupt }
