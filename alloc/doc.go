// Package alloc provides allocator capabilities for typed element storage.
//
// # Overview
//
// An Allocator obtains and releases contiguous blocks of elements for
// containers such as memkit.FixedArray. The package ships one implementation,
// Aligned, which guarantees a configurable power-of-two byte alignment on
// every block it returns.
//
// # Alignment
//
// By default Aligned promises the element type's natural alignment, which the
// ordinary Go allocation path already satisfies. Stricter alignments (for
// SIMD kernels, cache-line isolation, DMA buffers) are requested with
// WithAlignment and are served from an over-allocated buffer shifted to the
// first aligned byte.
//
// # Off-Heap Allocation
//
// WithOffHeap serves blocks from anonymous memory mappings instead of the Go
// heap. Off-heap blocks are invisible to the garbage collector, so
// Deallocate really returns them to the operating system.
//
// # Element Types
//
// Blocks obtained through the strict-alignment or off-heap paths live outside
// the collector's pointer maps. Element types on those paths must therefore
// be free of Go pointers (no pointers, maps, slices, strings, channels,
// functions or interfaces); Allocate reports ErrPointerElem otherwise. The
// natural-alignment path has no such restriction.
package alloc
