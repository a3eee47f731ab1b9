package heapstat

import (
	"testing"

	"github.com/brkheap/mmheap/internal/brk"
	"github.com/brkheap/mmheap/internal/heap"
)

func TestSnapshot(t *testing.T) {
	arena, err := brk.New(1 << 20)
	if err != nil {
		t.Fatalf("failed to create arena: %v", err)
	}
	defer arena.Close()

	h := heap.New(arena)

	p1 := h.Allocate(16)
	p2 := h.Allocate(32)
	h.Release(p1)

	s := Snapshot(h)

	if s.TotalBlocks != 2 {
		t.Fatalf("expected 2 blocks, got %d", s.TotalBlocks)
	}
	if s.FreeBlocks != 1 {
		t.Fatalf("expected 1 free block, got %d", s.FreeBlocks)
	}
	if s.AllocatedBlocks != 1 {
		t.Fatalf("expected 1 allocated block, got %d", s.AllocatedBlocks)
	}
	if s.BytesInUse != 32 {
		t.Fatalf("expected 32 bytes in use, got %d", s.BytesInUse)
	}
	if s.BytesFree != 16 {
		t.Fatalf("expected 16 bytes free, got %d", s.BytesFree)
	}
	if s.BreakHighWaterMark != h.BreakHighWaterMark() {
		t.Fatalf("break high water mark mismatch: %d != %d", s.BreakHighWaterMark, h.BreakHighWaterMark())
	}

	_ = p2
}
