package heap

import (
	"fmt"
	"unsafe"

	"github.com/brkheap/mmheap/internal/brk"
)

// DefaultArenaCapacity is a general-purpose reservation size for Init's
// capacity argument; cmd/heapbench uses it as its -arena default. Init
// itself always reserves exactly the capacity it is given.
const DefaultArenaCapacity = 64 * 1024 * 1024

// Default is the process-wide heap used by the package-level
// Allocate/Release/Resize functions, mirroring a global allocator
// instance. It is nil until Init succeeds.
var Default *Heap

// Init reserves a break arena of the given capacity and installs it as
// Default. It is not safe to call concurrently with Allocate/Release/
// Resize, or to call twice without an intervening reason to replace
// Default — like the Heap it sets up, Init assumes a single execution
// context.
func Init(capacity uintptr) error {
	arena, err := brk.New(capacity)
	if err != nil {
		return fmt.Errorf("heap: failed to initialise default heap: %w", err)
	}

	Default = New(arena)

	return nil
}

// Allocate delegates to Default.
func Allocate(size uintptr) unsafe.Pointer {
	if Default == nil {
		panic("heap: Default heap not initialised, call heap.Init first")
	}

	return Default.Allocate(size)
}

// Release delegates to Default.
func Release(ptr unsafe.Pointer) {
	if Default == nil {
		panic("heap: Default heap not initialised, call heap.Init first")
	}

	Default.Release(ptr)
}

// Resize delegates to Default.
func Resize(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	if Default == nil {
		panic("heap: Default heap not initialised, call heap.Init first")
	}

	return Default.Resize(ptr, size)
}
