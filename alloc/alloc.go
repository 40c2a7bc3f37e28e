package alloc

// Allocator obtains and releases contiguous blocks of elements.
//
// Allocate returns storage for exactly n elements; the block's first element
// is placed on the allocator's alignment boundary. Deallocate must receive
// exactly the block/count pair of a prior Allocate call and never fails.
//
// Implementations are value types: copies of an allocator are
// interchangeable with the original.
type Allocator[T any] interface {
	// Allocate returns a block of storage for exactly n elements.
	// n must be non-negative. For n == 0 a non-nil empty block is returned.
	Allocate(n int) ([]T, error)

	// Deallocate releases a block previously returned by Allocate with the
	// same n. It never fails.
	Deallocate(block []T, n int)

	// Alignment returns the byte alignment guaranteed for allocated blocks.
	Alignment() uintptr
}

// Equal reports whether two allocators are interchangeable. Allocators over
// different element types compare equal iff their alignments match.
func Equal[T, U any](a Allocator[T], b Allocator[U]) bool {
	return a.Alignment() == b.Alignment()
}
