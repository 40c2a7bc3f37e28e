// Package mmap provides anonymous memory mappings for off-heap allocation.
//
// # Anonymous Mappings
//
// MapAnon() creates read-write anonymous mappings. The memory lives outside
// the Go garbage collector's control, so callers must not store Go pointers
// in it and must release it explicitly via Close().
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//
// # Thread Safety
//
// Close() is idempotent and protected by an atomic flag. Callers must ensure
// no goroutine touches Bytes() after Close() returns.
package mmap
