package brk

import "unsafe"

// sliceAddr returns the address of the first byte backing b.
func sliceAddr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
