package mem

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLine is the cache line size of the target CPU.
const CacheLine = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// Alignment returns the region alignment used for elements with the given
// natural alignment: the larger of align and CacheLine.
func Alignment(align uintptr) int {
	return max(int(align), CacheLine)
}

// AllocAligned allocates a byte slice of the given size whose first byte is
// aligned to align. align must be a power of two.
// The returned slice is nil when size is not positive.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size, align int) []byte {
	if size <= 0 {
		return nil
	}
	if align <= 1 {
		return make([]byte, size)
	}

	// Allocate size + align so the start can be shifted up to align-1 bytes.
	buf := make([]byte, size+align)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	mask := uintptr(align - 1)
	offset := (uintptr(align) - (addr & mask)) & mask

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// IsAligned reports whether the first byte of b is aligned to align.
func IsAligned(b []byte, align int) bool {
	if len(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&b[0]))%uintptr(align) == 0 //nolint:gosec // address inspection only
}
