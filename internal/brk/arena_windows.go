//go:build windows

package brk

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// reserve obtains capacity bytes of committed, read-write memory via
// VirtualAlloc, the Windows counterpart to the anonymous mmap the unix
// build uses for the same purpose.
func reserve(capacity uintptr) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, capacity, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(capacity)), nil
}

func release(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}

	return windows.VirtualFree(sliceAddr(raw), 0, windows.MEM_RELEASE)
}
