package alloc

import (
	"sync"
	"unsafe"
)

// TestingT is the subset of testing.T used by Checked assertions.
type TestingT interface {
	Errorf(format string, args ...any)
	Helper()
}

// Checked wraps an Allocator and tracks every outstanding block so tests can
// assert that allocations and deallocations balance.
type Checked[T any] struct {
	underlying Allocator[T]

	mu       sync.Mutex
	live     map[uintptr]int // block base address -> element count
	allocs   int
	deallocs int
	badFrees int
}

// NewChecked creates a leak-tracking wrapper around underlying.
func NewChecked[T any](underlying Allocator[T]) *Checked[T] {
	return &Checked[T]{
		underlying: underlying,
		live:       make(map[uintptr]int),
	}
}

// Allocate obtains a block from the underlying allocator and records it.
func (c *Checked[T]) Allocate(n int) ([]T, error) {
	block, err := c.underlying.Allocate(n)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.allocs++
	if n > 0 {
		// Empty blocks share a base address and are not tracked.
		c.live[uintptr(unsafe.Pointer(unsafe.SliceData(block)))] = n
	}
	return block, nil
}

// Deallocate releases a block and records the release. Releasing a block
// that was never allocated, or with the wrong count, is counted as a bad
// free and reported by AssertEmpty.
func (c *Checked[T]) Deallocate(block []T, n int) {
	c.mu.Lock()

	c.deallocs++
	if n > 0 {
		base := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
		if tracked, ok := c.live[base]; !ok || tracked != n {
			c.badFrees++
		}
		delete(c.live, base)
	}

	c.mu.Unlock()

	c.underlying.Deallocate(block, n)
}

// Alignment returns the underlying allocator's alignment.
func (c *Checked[T]) Alignment() uintptr {
	return c.underlying.Alignment()
}

// LiveBlocks returns the number of outstanding non-empty blocks.
func (c *Checked[T]) LiveBlocks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.live)
}

// Counts returns the total allocate and deallocate call counts.
func (c *Checked[T]) Counts() (allocs, deallocs int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allocs, c.deallocs
}

// AssertEmpty fails t when blocks are still outstanding or a mismatched
// deallocation was observed.
func (c *Checked[T]) AssertEmpty(t TestingT) {
	t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.live) != 0 {
		t.Errorf("alloc: %d block(s) leaked", len(c.live))
	}
	if c.badFrees != 0 {
		t.Errorf("alloc: %d mismatched deallocation(s)", c.badFrees)
	}
}
