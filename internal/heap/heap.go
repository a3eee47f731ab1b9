package heap

import (
	"unsafe"

	"github.com/brkheap/mmheap/internal/brk"
)

// Heap is a handle to one program-break-backed block list. It is not
// safe for concurrent use — there is no internal locking, no atomics,
// no reentrancy guard. A correct caller serialises every call to
// Allocate, Release, and Resize on a single execution context.
type Heap struct {
	root  *Header
	arena *brk.Arena
}

// New creates a Heap over the given arena. The heap is uninitialised
// (its root is nil) until the first successful Allocate.
func New(arena *brk.Arena) *Heap {
	return &Heap{arena: arena}
}

// Allocate returns a zeroed address with at least size bytes of
// exclusive capacity, or nil if size is zero or the OS extension of the
// break fails. The address is 8-byte aligned when every size this heap
// has been asked for is a multiple of 8; size is not rounded up.
func (h *Heap) Allocate(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	request := size + HeaderSize

	if h.root == nil {
		addr, err := h.arena.ExtendBreak(request)
		if err != nil {
			return nil
		}

		header := headerAt(addr)
		payload := payloadOf(header)
		*header = Header{
			Prev:  nil,
			Next:  nil,
			Size:  size,
			Free:  false,
			Magic: magicFor(payload),
		}
		h.root = header

		zero(payload, size)

		return payload
	}

	var last *Header

	curr := h.root
	for curr != nil && !(curr.Free && curr.Size >= size) {
		last = curr
		curr = curr.Next
	}

	var payload unsafe.Pointer

	if curr == nil {
		addr, err := h.arena.ExtendBreak(request)
		if err != nil {
			return nil
		}

		header := headerAt(addr)
		payload = payloadOf(header)
		*header = Header{
			Prev:  last,
			Next:  nil,
			Size:  size,
			Free:  false,
			Magic: magicFor(payload),
		}
		last.Next = header
	} else {
		curr.Free = false
		if h.split(curr, size) {
			curr.Size = size
		}
		payload = payloadOf(curr)
	}

	zero(payload, size)

	return payload
}

// split carves a trailing free block out of node when node.Size exceeds
// size+HeaderSize+1, so that the new block gets at least two payload
// bytes beyond its own header, and reports whether it did. It does not touch node.Size itself — the
// caller sets that to the requested size only when split reports true,
// per the clean accounting spec.md prefers over the source's
// double-subtraction. When node is reused without splitting, its
// recorded Size must stay exactly what it already was: shrinking it to
// the requested size here would forget the block's real capacity and
// make it unreusable for a later, larger allocation that would still
// fit.
func (h *Heap) split(node *Header, size uintptr) bool {
	if node.Size <= size+HeaderSize+1 {
		return false
	}

	newAddr := uintptr(unsafe.Pointer(node)) + HeaderSize + size
	newHeader := headerAt(newAddr)
	newPayload := payloadOf(newHeader)

	*newHeader = Header{
		Prev:  node,
		Next:  node.Next,
		Size:  node.Size - size - HeaderSize,
		Free:  true,
		Magic: magicFor(newPayload),
	}

	if newHeader.Next != nil {
		newHeader.Next.Prev = newHeader
	}

	node.Next = newHeader

	return true
}

// Release marks ptr's block free and eagerly coalesces it with any
// free neighbours. It is a silent no-op for a nil pointer, a pointer
// past the current break, or a pointer whose header fails the magic
// check — this is what makes double-free harmless and rejects pointers
// that never came from this allocator.
func (h *Heap) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	if uintptr(ptr) > h.arena.CurrentBreak() {
		return
	}

	header := headerOf(ptr)
	if header.Magic != magicFor(ptr) {
		return
	}

	header.Free = true

	for header.Next != nil && header.Next.Free {
		absorbed := header.Next
		header.Size += absorbed.Size + HeaderSize
		header.Next = absorbed.Next

		if header.Next != nil {
			header.Next.Prev = header
		}

		// An absorbed header's bytes now belong to header's payload, but
		// the memory itself still carries its old, still-valid magic. Null
		// its links so a stale pointer re-released into it (a double free)
		// cannot walk back into the list it no longer belongs to.
		absorbed.Prev = nil
		absorbed.Next = nil
	}

	curr := header
	for curr.Prev != nil && curr.Prev.Free {
		prev := curr.Prev
		prev.Size += curr.Size + HeaderSize
		prev.Next = curr.Next

		if curr.Next != nil {
			curr.Next.Prev = prev
		}

		curr.Prev = nil
		curr.Next = nil
		curr = prev
	}
}

// Resize changes the capacity of the block at ptr. Shrinking happens
// in place and returns ptr unchanged. Growing allocates a new block,
// copies the original size bytes into it, releases the old block, and
// returns the new address. A bad pointer (header magic mismatch) is
// rejected the same way Release rejects one: nothing is touched and
// nil is returned, since header.Size cannot be trusted from an
// unverified header.
func (h *Heap) Resize(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	if ptr == nil && size == 0 {
		return nil
	}

	if ptr == nil {
		return h.Allocate(size)
	}

	if size == 0 {
		h.Release(ptr)
		return nil
	}

	header := headerOf(ptr)
	if header.Magic != magicFor(ptr) {
		return nil
	}

	if size <= header.Size {
		header.Size = size
		return ptr
	}

	newPtr := h.Allocate(size)
	if newPtr == nil {
		return nil
	}

	copyBytes(newPtr, ptr, header.Size)
	h.Release(ptr)

	return newPtr
}

func zero(ptr unsafe.Pointer, size uintptr) {
	dst := (*[1 << 30]byte)(ptr)[:size:size]
	for i := range dst {
		dst[i] = 0
	}
}

func copyBytes(dst, src unsafe.Pointer, size uintptr) {
	dstSlice := (*[1 << 30]byte)(dst)[:size:size]
	srcSlice := (*[1 << 30]byte)(src)[:size:size]
	copy(dstSlice, srcSlice)
}
