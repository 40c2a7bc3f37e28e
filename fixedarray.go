package memkit

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/hupe1980/memkit/alloc"
)

// FixedArray is an array whose size is defined at construction time, instead
// of compile time (unlike a Go array) and is constant after construction
// (unlike a slice). Storage comes from an alloc.Allocator and element
// lifetime is managed explicitly.
//
// An array is always in one of two states: live (non-nil block holding
// exactly Len() constructed elements) or empty/uninitialized (no block, size
// zero — the state after a move or a failed Reset). Every element access is
// bounds-checked; out-of-range and uninitialized use both surface as
// *OutOfRangeError.
//
// FixedArray is not safe for concurrent use.
type FixedArray[T any] struct {
	cfg config[T]
	mem []T // nil in the empty/uninitialized state; len(mem) is the size
}

// New creates an array of n default (zero-value) elements.
func New[T any](n int, opts ...Option[T]) (*FixedArray[T], error) {
	a := &FixedArray[T]{cfg: newConfig(opts)}
	if err := a.obtain(n); err != nil {
		return nil, err
	}
	clear(a.mem)
	return a, nil
}

// NewFunc creates an array of n elements, constructing the element at each
// index with init. If init fails partway, the constructed prefix is torn
// down, the block is released and the error is returned; no partially built
// array is observable.
func NewFunc[T any](n int, init func(i int) (T, error), opts ...Option[T]) (*FixedArray[T], error) {
	a := &FixedArray[T]{cfg: newConfig(opts)}
	if err := a.obtain(n); err != nil {
		return nil, err
	}
	for i := range a.mem {
		v, err := init(i)
		if err != nil {
			a.release(i)
			return nil, fmt.Errorf("memkit: construct element %d: %w", i, err)
		}
		a.mem[i] = v
	}
	return a, nil
}

// NewValue creates an array of n copies of v. When a clone hook is
// configured each slot receives a deep copy, with the same partial-failure
// cleanup as NewFunc.
func NewValue[T any](n int, v T, opts ...Option[T]) (*FixedArray[T], error) {
	cfg := newConfig(opts)
	if cfg.clone != nil {
		return NewFunc(n, func(int) (T, error) { return cfg.clone(v) }, opts...)
	}

	a := &FixedArray[T]{cfg: cfg}
	if err := a.obtain(n); err != nil {
		return nil, err
	}
	for i := range a.mem {
		a.mem[i] = v
	}
	return a, nil
}

// Of creates an array holding exactly the given values, in order.
func Of[T any](values ...T) (*FixedArray[T], error) {
	a := &FixedArray[T]{cfg: newConfig[T](nil)}
	if err := a.obtain(len(values)); err != nil {
		return nil, err
	}
	copy(a.mem, values)
	return a, nil
}

// FromSlice creates an array copying the elements of s in order. A failing
// clone hook tears down the already copied prefix and releases the block
// before the error is returned.
func FromSlice[T any](s []T, opts ...Option[T]) (*FixedArray[T], error) {
	a := &FixedArray[T]{cfg: newConfig(opts)}
	if err := a.obtain(len(s)); err != nil {
		return nil, err
	}
	if err := a.copyInto(s); err != nil {
		return nil, err
	}
	return a, nil
}

// Collect creates an array from a forward-only sequence. The sequence is
// drained once to determine the size, then copied like FromSlice.
func Collect[T any](seq iter.Seq[T], opts ...Option[T]) (*FixedArray[T], error) {
	var staged []T
	for v := range seq {
		staged = append(staged, v)
	}
	return FromSlice(staged, opts...)
}

// obtain asks the allocator for a block of n elements.
func (a *FixedArray[T]) obtain(n int) error {
	mem, err := a.cfg.allocator.Allocate(n)
	if err != nil {
		return fmt.Errorf("memkit: allocate %d elements: %w", n, err)
	}
	a.mem = mem
	return nil
}

// release destroys the first live elements of the block and returns the
// storage to the allocator, leaving the array empty/uninitialized. Slots at
// index live and beyond are treated as never constructed.
func (a *FixedArray[T]) release(live int) {
	if a.mem == nil {
		return
	}
	if a.cfg.destroy != nil {
		for i := 0; i < live; i++ {
			a.cfg.destroy(&a.mem[i])
		}
	}
	a.cfg.allocator.Deallocate(a.mem, len(a.mem))
	a.mem = nil
}

// copyInto fills the freshly obtained block from src, applying the clone
// hook when configured. On failure the array is left empty/uninitialized.
func (a *FixedArray[T]) copyInto(src []T) error {
	if a.cfg.clone == nil {
		copy(a.mem, src)
		return nil
	}
	for i, v := range src {
		c, err := a.cfg.clone(v)
		if err != nil {
			a.release(i)
			return fmt.Errorf("memkit: copy element %d: %w", i, err)
		}
		a.mem[i] = c
	}
	return nil
}

// copyAllocator selects the allocator for a copy per the CopyPolicy.
func (a *FixedArray[T]) copyAllocator() alloc.Allocator[T] {
	if a.cfg.policy == FreshAllocator {
		return alloc.NewAligned[T]()
	}
	return a.cfg.allocator
}

// Clone returns an independent copy of the array. The copy's allocator
// follows the configured CopyPolicy; elements go through the clone hook when
// one is set. Cloning an empty/uninitialized array yields another one.
func (a *FixedArray[T]) Clone() (*FixedArray[T], error) {
	cfg := a.cfg
	cfg.allocator = a.copyAllocator()

	b := &FixedArray[T]{cfg: cfg}
	if a.mem == nil {
		return b, nil
	}
	if err := b.obtain(len(a.mem)); err != nil {
		return nil, err
	}
	if err := b.copyInto(a.mem); err != nil {
		return nil, err
	}
	return b, nil
}

// CopyFrom replaces the receiver's contents with a copy of src's. The
// receiver's old elements are destroyed and its block released first, then a
// fresh block is filled elementwise; the allocator is re-selected per src's
// CopyPolicy. A failed allocation or element copy leaves the receiver
// empty/uninitialized, never half-valid.
func (a *FixedArray[T]) CopyFrom(src *FixedArray[T]) error {
	if a == src {
		return nil
	}

	a.release(len(a.mem))

	cfg := src.cfg
	cfg.allocator = src.copyAllocator()
	a.cfg = cfg

	if src.mem == nil {
		return nil
	}
	if err := a.obtain(len(src.mem)); err != nil {
		return err
	}
	return a.copyInto(src.mem)
}

// Move transfers the receiver's block and elements into a new array in O(1),
// leaving the receiver empty/uninitialized.
func (a *FixedArray[T]) Move() *FixedArray[T] {
	b := &FixedArray[T]{cfg: a.cfg, mem: a.mem}
	a.mem = nil
	return b
}

// MoveFrom takes ownership of src's block and elements in O(1), leaving src
// empty/uninitialized. The receiver's previous contents are destroyed and
// released first. The allocator travels with the block.
func (a *FixedArray[T]) MoveFrom(src *FixedArray[T]) {
	if a == src {
		return
	}
	a.release(len(a.mem))
	a.cfg = src.cfg
	a.mem = src.mem
	src.mem = nil
}

// Len returns the number of live elements.
func (a *FixedArray[T]) Len() int { return len(a.mem) }

// Empty reports whether the array holds no elements.
func (a *FixedArray[T]) Empty() bool { return len(a.mem) == 0 }

func (a *FixedArray[T]) checkRange(i int) error {
	if a.mem == nil || i < 0 || i >= len(a.mem) {
		return &OutOfRangeError{Index: i, Size: len(a.mem)}
	}
	return nil
}

// At returns a pointer to element i for in-place mutation.
func (a *FixedArray[T]) At(i int) (*T, error) {
	if err := a.checkRange(i); err != nil {
		return nil, err
	}
	return &a.mem[i], nil
}

// Get returns element i by value.
func (a *FixedArray[T]) Get(i int) (T, error) {
	if err := a.checkRange(i); err != nil {
		var zero T
		return zero, err
	}
	return a.mem[i], nil
}

// Set overwrites element i with v.
func (a *FixedArray[T]) Set(i int, v T) error {
	if err := a.checkRange(i); err != nil {
		return err
	}
	a.mem[i] = v
	return nil
}

// Front returns a pointer to the first element.
func (a *FixedArray[T]) Front() (*T, error) {
	return a.At(0)
}

// Back returns a pointer to the last element.
func (a *FixedArray[T]) Back() (*T, error) {
	return a.At(len(a.mem) - 1)
}

// All returns a forward iterator over index/element pairs. It is valid until
// the next structural mutation (Reset, Free, move or copy assignment).
func (a *FixedArray[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.mem {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Backward returns a reverse iterator over index/element pairs, subject to
// the same validity rule as All.
func (a *FixedArray[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := len(a.mem) - 1; i >= 0; i-- {
			if !yield(i, a.mem[i]) {
				return
			}
		}
	}
}

// Slice returns the live elements as a contiguous view into the array's
// block. The view is valid until the next structural mutation.
func (a *FixedArray[T]) Slice() []T { return a.mem }

// Fill overwrites every live element with v.
func (a *FixedArray[T]) Fill(v T) {
	for i := range a.mem {
		a.mem[i] = v
	}
}

// Equal reports elementwise equality of two arrays: equal sizes and equal
// corresponding elements, independent of allocator identity.
func Equal[T comparable](a, b *FixedArray[T]) bool {
	return slices.Equal(a.mem, b.mem)
}

// EqualFunc is Equal with a custom element comparison.
func (a *FixedArray[T]) EqualFunc(b *FixedArray[T], eq func(x, y T) bool) bool {
	return slices.EqualFunc(a.mem, b.mem, eq)
}

// Reset destroys every live element, releases the block and allocates a new
// block of n default-constructed (zero-value) elements. This is the only way
// to change an array's size after construction. If the new allocation fails
// the array is left empty/uninitialized.
func (a *FixedArray[T]) Reset(n int) error {
	prior := len(a.mem)
	a.release(prior)

	if err := a.obtain(n); err != nil {
		return err
	}
	clear(a.mem)

	if a.cfg.logger != nil {
		a.cfg.logger.Debug("fixed array reset", slog.Int("prior_size", prior), slog.Int("size", n))
	}
	return nil
}

// Free destroys all live elements and returns the block to the allocator,
// leaving the array empty/uninitialized. It is idempotent.
func (a *FixedArray[T]) Free() {
	if a.mem == nil {
		return
	}
	n := len(a.mem)
	a.release(n)

	if a.cfg.logger != nil {
		a.cfg.logger.Debug("fixed array freed", slog.Int("size", n))
	}
}
