// Package heap implements the block manager: a first-fit,
// split-and-coalesce allocator over a doubly-linked list of
// header-prefixed blocks living inside a brk.Arena.
package heap

import "unsafe"

const (
	// Alignment is the alignment every header, and therefore the payload
	// immediately following it, keeps as long as every size passed to
	// Allocate is a multiple of Alignment. Allocate does not round sizes
	// up: an odd-sized block leaves the headers placed after it unaligned.
	Alignment = 8

	// MagicConstant is XORed with a block's payload address to produce
	// the integrity token stored in its header. It is a foreign-pointer
	// filter, not a security boundary: it catches corruption and
	// pointers that never came from this allocator, nothing more.
	MagicConstant uintptr = 0x5eadc0de
)

// Header is the in-band record placed immediately before every user
// payload. Fields are laid out address-arithmetic-first: callers reach
// the payload and neighbouring headers via uintptr offsets from a
// Header pointer, not by assuming the compiler's struct layout matches
// any wire format — HeaderSize is the only layout fact anything outside
// this file depends on.
type Header struct {
	Prev  *Header
	Next  *Header
	Size  uintptr
	Free  bool
	Magic uintptr
}

// HeaderSize is the number of bytes a Header occupies ahead of its
// payload. On 64-bit platforms it is 40, a multiple of 8; on 32-bit
// platforms, where the pointer-sized fields are 4 bytes, it is 20.
const HeaderSize = unsafe.Sizeof(Header{})

// headerAt views the memory at addr as a Header.
func headerAt(addr uintptr) *Header {
	return (*Header)(unsafe.Pointer(addr))
}

// payloadOf returns the payload address immediately following h.
func payloadOf(h *Header) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(h)) + HeaderSize)
}

// headerOf returns the header immediately preceding ptr.
func headerOf(ptr unsafe.Pointer) *Header {
	return (*Header)(unsafe.Pointer(uintptr(ptr) - HeaderSize))
}

// magicFor computes the expected integrity token for a payload address.
func magicFor(payload unsafe.Pointer) uintptr {
	return uintptr(payload) ^ MagicConstant
}
