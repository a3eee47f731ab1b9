// Package heapstat provides a point-in-time statistics snapshot over a
// heap.Heap: block counts, bytes in use/free, and the break high-water
// mark. It is pure instrumentation: nothing here mutates heap state or
// participates in Allocate/Release/Resize.
package heapstat

import "github.com/brkheap/mmheap/internal/heap"

// Stats is a snapshot of block-manager state at the moment Snapshot
// was called.
type Stats struct {
	TotalBlocks        uint64
	AllocatedBlocks    uint64
	FreeBlocks         uint64
	BytesInUse         uint64
	BytesFree          uint64
	HeaderOverhead     uint64
	BreakHighWaterMark uintptr
}

// Snapshot walks h's block list once and returns a copy of its current
// statistics.
func Snapshot(h *heap.Heap) Stats {
	var s Stats

	h.Walk(func(b heap.BlockInfo) {
		s.TotalBlocks++
		s.HeaderOverhead += uint64(heap.HeaderSize)

		if b.Free {
			s.FreeBlocks++
			s.BytesFree += uint64(b.Size)
		} else {
			s.AllocatedBlocks++
			s.BytesInUse += uint64(b.Size)
		}
	})

	s.BreakHighWaterMark = h.BreakHighWaterMark()

	return s
}
