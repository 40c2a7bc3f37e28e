package alloc

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned when a block cannot be obtained, whether
	// from the memory budget, the operating system or size arithmetic.
	ErrOutOfMemory = errors.New("alloc: out of memory")
	// ErrInvalidCount is returned when a negative element count is requested.
	ErrInvalidCount = errors.New("alloc: negative element count")
	// ErrPointerElem is returned when the element type contains Go pointers
	// but the requested block would live outside the collector's view.
	ErrPointerElem = errors.New("alloc: element type contains Go pointers")
)

// SizeError indicates that an element count does not fit in the platform's
// addressable byte size.
//
// It unwraps to ErrOutOfMemory.
type SizeError struct {
	Count    int
	ElemSize uintptr
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("alloc: %d elements of %d bytes overflow the addressable size", e.Count, e.ElemSize)
}

func (e *SizeError) Unwrap() error { return ErrOutOfMemory }
