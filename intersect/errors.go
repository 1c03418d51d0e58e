package intersect

import (
	"errors"
	"fmt"

	"github.com/Alessio-Campa/s-indexes/encoding"
)

// ErrInvalidPair reports a representation pair no kernel handles.
type ErrInvalidPair struct {
	Granularity encoding.Granularity
	Left, Right encoding.Kind
}

func (e *ErrInvalidPair) Error() string {
	return fmt.Sprintf("invalid %s representation pair: %s/%s", e.Granularity, e.Left, e.Right)
}

// ErrInvalidBlockCount reports a sparse chunk block count outside [1, 256].
type ErrInvalidBlockCount struct {
	Blocks int
}

func (e *ErrInvalidBlockCount) Error() string {
	return fmt.Sprintf("invalid sparse chunk block count: %d", e.Blocks)
}

// Protect runs fn and converts a kernel precondition panic into an error.
// Any other panic is propagated.
func Protect(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && isPrecondition(e) {
			err = e
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

func isPrecondition(err error) bool {
	var card *encoding.ErrInvalidCardinality
	var pair *ErrInvalidPair
	var blocks *ErrInvalidBlockCount
	return errors.As(err, &card) || errors.As(err, &pair) || errors.As(err, &blocks)
}
