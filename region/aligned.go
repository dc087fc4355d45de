package region

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/msiglreith/norse-billow/internal/align"
)

// DefaultAlign is the alignment used when callers have no specific
// requirement: one cache line. It satisfies every natural Go type
// alignment and keeps adjacent regions off each other's lines.
var DefaultAlign = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// AlignedBytes allocates a byte slice of the given size whose first
// byte sits at an address that is a multiple of alignment.
//
// alignment must be a power of two. The slice over-allocates by up to
// alignment-1 bytes to find the boundary; the backing array is kept
// alive by the returned slice. Size zero or negative returns nil.
func AlignedBytes(size, alignment int) []byte {
	if !align.IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("region: alignment %d is not a power of two", alignment))
	}
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+alignment-1)

	addr := uintptr(unsafe.Pointer(&buf[0]))
	offset := align.UpAddr(addr, uintptr(alignment)) - addr

	return buf[offset : offset+uintptr(size)]
}
