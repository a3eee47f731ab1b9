package heap

// BlockInfo is a read-only view of one block, used by diagnostic
// callers (see internal/heapstat) that need to summarise heap state
// without reaching into Header directly.
type BlockInfo struct {
	Size uintptr
	Free bool
}

// Walk invokes fn for every block in address order. It does not mutate
// heap state and is safe to call between (but not concurrently with)
// Allocate/Release/Resize calls on the same Heap.
func (h *Heap) Walk(fn func(BlockInfo)) {
	for curr := h.root; curr != nil; curr = curr.Next {
		fn(BlockInfo{Size: curr.Size, Free: curr.Free})
	}
}

// BreakHighWaterMark returns the current break of the heap's arena.
func (h *Heap) BreakHighWaterMark() uintptr {
	if h.arena == nil {
		return 0
	}

	return h.arena.CurrentBreak()
}
