package alloc

import (
	"fmt"
	"math"
	"math/bits"
	"os"
	"reflect"
	"sync"
	"unsafe"

	"github.com/hupe1980/memkit/internal/conv"
	"github.com/hupe1980/memkit/internal/mmap"
	"github.com/hupe1980/memkit/resource"
)

// maxAllocBytes is the largest byte size a single block may span.
const maxAllocBytes = uintptr(math.MaxInt)

var pageSize = uintptr(os.Getpagesize())

// offHeapMappings tracks live anonymous mappings by block base address so
// that Deallocate can unmap them. Allocator values stay stateless.
var offHeapMappings sync.Map // uintptr -> *mmap.Mapping

type settings struct {
	alignment uintptr
	offHeap   bool
	rc        *resource.Controller
}

// Option configures an Aligned allocator.
type Option func(*settings)

// WithAlignment sets the byte alignment for allocated blocks. Alignments
// that are not powers of two are rounded up to the next power of two.
// Zero keeps the default (the element type's natural alignment).
func WithAlignment(alignment uintptr) Option {
	return func(s *settings) {
		if alignment == 0 {
			return
		}
		s.alignment = uintptr(1) << bits.Len(uint(alignment-1))
	}
}

// WithOffHeap serves blocks from anonymous memory mappings instead of the
// Go heap. Deallocate then returns the memory to the operating system.
func WithOffHeap() Option {
	return func(s *settings) {
		s.offHeap = true
	}
}

// WithController makes the allocator charge every block against the given
// memory budget. An exhausted budget surfaces as ErrOutOfMemory.
func WithController(rc *resource.Controller) Option {
	return func(s *settings) {
		s.rc = rc
	}
}

// Aligned is an alignment-guaranteeing Allocator.
//
// It carries configuration only: the zero value allocates on the Go heap at
// the element type's natural alignment, and any two Aligned values with the
// same alignment are interchangeable. See Equal.
type Aligned[T any] struct {
	settings
}

// NewAligned creates an Aligned allocator for element type T.
func NewAligned[T any](opts ...Option) Aligned[T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return Aligned[T]{settings: s}
}

// Rebind converts an allocator to a different element type, preserving its
// alignment and configuration.
func Rebind[U, T any](a Aligned[T]) Aligned[U] {
	return Aligned[U]{settings: a.settings}
}

// Alignment returns the effective byte alignment: the configured value, or
// the element type's natural alignment when none was configured.
func (a Aligned[T]) Alignment() uintptr {
	if a.alignment != 0 {
		return a.alignment
	}
	var zero T
	return unsafe.Alignof(zero)
}

// Allocate returns a block of storage for exactly n elements, aligned to
// Alignment(). The storage is zeroed.
func (a Aligned[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if n == 0 {
		return make([]T, 0), nil
	}

	var zero T
	elemSize := unsafe.Sizeof(zero)
	if elemSize > 0 && uintptr(n) > maxAllocBytes/elemSize {
		return nil, &SizeError{Count: n, ElemSize: elemSize}
	}
	byteSize := uintptr(n) * elemSize

	if a.rc != nil && byteSize > 0 {
		if !a.rc.TryAcquireMemory(int64(byteSize)) {
			return nil, fmt.Errorf("%w: memory budget exhausted (%d bytes)", ErrOutOfMemory, byteSize)
		}
	}

	block, err := a.obtain(n, byteSize)
	if err != nil {
		if a.rc != nil && byteSize > 0 {
			a.rc.ReleaseMemory(int64(byteSize))
		}
		return nil, err
	}

	recordAllocate(byteSize)
	return block, nil
}

// Deallocate releases a block previously returned by Allocate with the same
// n. Heap blocks are reclaimed by the garbage collector once the caller
// drops its reference; off-heap blocks are unmapped immediately.
func (a Aligned[T]) Deallocate(block []T, n int) {
	if block == nil || n <= 0 {
		return
	}

	var zero T
	byteSize := uintptr(n) * unsafe.Sizeof(zero)

	if a.offHeap && byteSize > 0 {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
		if m, ok := offHeapMappings.LoadAndDelete(base); ok {
			_ = m.(*mmap.Mapping).Close()
		}
	}

	if a.rc != nil && byteSize > 0 {
		a.rc.ReleaseMemory(int64(byteSize))
	}

	recordDeallocate(byteSize)
}

func (a Aligned[T]) obtain(n int, byteSize uintptr) ([]T, error) {
	var zero T

	// Zero-sized element types need no storage.
	if byteSize == 0 {
		return make([]T, n), nil
	}

	align := a.Alignment()

	if a.offHeap {
		return mapBlock[T](n, byteSize, align)
	}

	if align <= unsafe.Alignof(zero) {
		// The ordinary allocation path already satisfies the requested
		// alignment.
		return make([]T, n), nil
	}

	if hasPointers[T]() {
		return nil, fmt.Errorf("%w: %T", ErrPointerElem, zero)
	}

	// Over-allocate and shift to the first aligned byte. The returned slice
	// aliases buf, keeping the whole backing array reachable.
	total, err := conv.UintptrToInt(byteSize + align)
	if err != nil {
		return nil, &SizeError{Count: n, ElemSize: unsafe.Sizeof(zero)}
	}
	buf := make([]byte, total)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	offset := (align - addr&(align-1)) & (align - 1)

	ptr := unsafe.Pointer(&buf[offset])
	return unsafe.Slice((*T)(ptr), n), nil
}

func mapBlock[T any](n int, byteSize, align uintptr) ([]T, error) {
	var zero T
	if hasPointers[T]() {
		return nil, fmt.Errorf("%w: %T", ErrPointerElem, zero)
	}

	// Anonymous mappings are page-aligned; only alignments beyond a page
	// need extra room to shift.
	mapSize := byteSize
	if align > pageSize {
		mapSize += align
	}
	size, err := conv.UintptrToInt(mapSize)
	if err != nil {
		return nil, &SizeError{Count: n, ElemSize: unsafe.Sizeof(zero)}
	}

	m, err := mmap.MapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}

	data := m.Bytes()
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	offset := (align - addr&(align-1)) & (align - 1)

	ptr := unsafe.Pointer(&data[offset])
	offHeapMappings.Store(uintptr(ptr), m)

	return unsafe.Slice((*T)(ptr), n), nil
}

// hasPointers reports whether T contains Go pointers the collector would
// need to scan.
func hasPointers[T any]() bool {
	return typeHasPointers(reflect.TypeFor[T]())
}

func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, maps, slices, strings, channels, funcs, interfaces.
		return true
	}
}
