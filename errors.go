package memkit

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is the sentinel matched by every failed element access,
// including access to an empty or moved-from array.
var ErrOutOfRange = errors.New("memkit: index out of range")

// OutOfRangeError reports an element access outside [0, Size).
//
// It unwraps to ErrOutOfRange.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("memkit: index %d out of range [0, %d)", e.Index, e.Size)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }
