// Package memkit provides low-level memory building blocks: an
// alignment-aware allocator capability and a fixed-capacity array container
// with explicit element lifecycle.
//
// # FixedArray
//
// FixedArray is an array whose size is chosen at construction time instead of
// compile time and never grows. Its storage comes from an alloc.Allocator,
// every element access is bounds-checked, and element construction and
// teardown are explicit:
//
//	arr, _ := memkit.NewValue(5, 7)
//	defer arr.Free()
//
//	v, _ := arr.Get(2) // 7
//	_ = arr.Reset(3)   // 3 zero-valued elements
//
// # Allocators
//
// The alloc subpackage supplies the default allocator. Stricter alignments
// and off-heap storage are opt-in:
//
//	a := alloc.NewAligned[float32](alloc.WithAlignment(64))
//	arr, _ := memkit.New(1024, memkit.WithAllocator[float32](a))
//
// # Thread Safety
//
// FixedArray performs no internal synchronization; callers needing concurrent
// access must impose their own mutual exclusion. Allocators themselves are
// stateless values and safe to share.
package memkit
