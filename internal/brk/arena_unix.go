//go:build unix

package brk

import "golang.org/x/sys/unix"

// reserve obtains capacity bytes of anonymous, read-write memory via
// mmap(2). The mapping is committed up front: unlike a real brk(2),
// which only promises the kernel will back pages as the segment grows,
// an anonymous MAP_PRIVATE mapping is demand-paged by the OS anyway,
// so reserving the whole capacity here costs no more physical memory
// than growing it incrementally would.
func reserve(capacity uintptr) ([]byte, error) {
	return unix.Mmap(-1, 0, int(capacity), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func release(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}

	return unix.Munmap(raw)
}
