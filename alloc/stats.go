package alloc

import (
	"sync/atomic"

	"github.com/hupe1980/memkit/internal/conv"
)

// Stats tracks package-wide allocator activity.
type Stats struct {
	TotalAllocs   uint64 // blocks obtained
	TotalDeallocs uint64 // blocks released
	BytesObtained uint64 // cumulative bytes allocated
	BytesReleased uint64 // cumulative bytes deallocated
}

type atomicStats struct {
	totalAllocs   atomic.Uint64
	totalDeallocs atomic.Uint64
	bytesObtained atomic.Uint64
	bytesReleased atomic.Uint64
}

var stats atomicStats

func recordAllocate(byteSize uintptr) {
	stats.totalAllocs.Add(1)
	bs, _ := conv.IntToUint64(int(byteSize)) // byteSize <= maxAllocBytes
	stats.bytesObtained.Add(bs)
}

func recordDeallocate(byteSize uintptr) {
	stats.totalDeallocs.Add(1)
	bs, _ := conv.IntToUint64(int(byteSize))
	stats.bytesReleased.Add(bs)
}

// ReadStats returns a snapshot of the package-wide counters.
func ReadStats() Stats {
	return Stats{
		TotalAllocs:   stats.totalAllocs.Load(),
		TotalDeallocs: stats.totalDeallocs.Load(),
		BytesObtained: stats.bytesObtained.Load(),
		BytesReleased: stats.bytesReleased.Load(),
	}
}

// ResetStats zeroes the package-wide counters. Intended for tests.
func ResetStats() {
	stats.totalAllocs.Store(0)
	stats.totalDeallocs.Store(0)
	stats.bytesObtained.Store(0)
	stats.bytesReleased.Store(0)
}
