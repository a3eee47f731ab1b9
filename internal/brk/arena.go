// Package brk provides the program-break primitive the block manager
// grows its heap through: a single, fixed-capacity, page-backed region
// of address space with a monotonically advancing logical boundary.
//
// Real sbrk(2)/brk(2) are not reachable from Go without cgo and are
// unsafe to call directly alongside a runtime (like Go's own) that
// manages its own break behind the scenes. An Arena reproduces the
// contract the block manager actually needs — extend the region by a
// delta and get back the previous boundary, or read the boundary back
// — over memory obtained from a real OS mapping syscall instead.
package brk

import "fmt"

// ErrExhausted is returned by ExtendBreak when delta would grow the
// break past the arena's reserved capacity.
type ErrExhausted struct {
	Requested uintptr
	Available uintptr
}

func (e *ErrExhausted) Error() string {
	return fmt.Sprintf("brk: requested %d bytes, only %d available", e.Requested, e.Available)
}

// Arena is a reserved region of address space with a logical break
// cursor inside it. It is not safe for concurrent use; the block
// manager built on top of it already requires single-threaded callers.
type Arena struct {
	base     uintptr
	capacity uintptr
	brk      uintptr
	raw      []byte
	closed   bool
}

// New reserves capacity bytes of page-backed memory and returns an
// Arena whose break starts at the base of that reservation.
func New(capacity uintptr) (*Arena, error) {
	if capacity == 0 {
		return nil, fmt.Errorf("brk: capacity must be greater than 0")
	}

	raw, err := reserve(capacity)
	if err != nil {
		return nil, fmt.Errorf("brk: reserve failed: %w", err)
	}

	base := uintptr(0)
	if len(raw) > 0 {
		base = sliceAddr(raw)
	}

	return &Arena{
		base:     base,
		capacity: capacity,
		brk:      base,
		raw:      raw,
	}, nil
}

// CurrentBreak returns the present break without mutating it.
func (a *Arena) CurrentBreak() uintptr {
	return a.brk
}

// ExtendBreak grows the break by delta and returns the previous break.
// It fails without moving the break if delta would exceed the arena's
// reserved capacity.
func (a *Arena) ExtendBreak(delta uintptr) (uintptr, error) {
	if delta == 0 {
		return a.brk, nil
	}

	used := a.brk - a.base
	if used+delta > a.capacity {
		return 0, &ErrExhausted{Requested: delta, Available: a.capacity - used}
	}

	prev := a.brk
	a.brk += delta

	return prev, nil
}

// Close releases the underlying OS mapping. The allocator itself never
// calls this — spec.md's non-goals exclude returning memory to the OS
// from the allocator's own behavior — but a test or a harness that
// creates many Arenas in one process should call it to avoid
// exhausting address space.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}

	a.closed = true

	return release(a.raw)
}
