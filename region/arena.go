package region

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/msiglreith/norse-billow/internal/align"
)

// ErrArenaFull is returned when an arena cannot satisfy an allocation
// from its remaining space.
var ErrArenaFull = errors.New("region: arena is full")

// Arena carves one fixed buffer into aligned sub-regions, bump-pointer
// style. It never grows; when the buffer is exhausted Alloc returns
// ErrArenaFull until Reset.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	buf []byte
	off int
}

// NewArena returns an arena carving the given buffer. The buffer's own
// address alignment bounds what Alloc can guarantee without padding;
// buffers from AlignedBytes or Mapping start on at least a cache line.
func NewArena(buf []byte) *Arena {
	return &Arena{buf: buf}
}

// NewArenaSize returns an arena over a fresh DefaultAlign-aligned
// buffer of the given size.
func NewArenaSize(size int) *Arena {
	return NewArena(AlignedBytes(size, DefaultAlign))
}

// Alloc carves size bytes starting at an address that is a multiple of
// alignment and returns them. alignment must be a power of two; size
// must be non-negative. The returned slice aliases the arena's buffer
// and is invalidated by Reset.
func (a *Arena) Alloc(size, alignment int) ([]byte, error) {
	if !align.IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("region: alignment %d is not a power of two", alignment))
	}
	if size < 0 {
		panic(fmt.Sprintf("region: negative allocation size %d", size))
	}
	if len(a.buf) == 0 {
		if size == 0 {
			return nil, nil
		}
		return nil, ErrArenaFull
	}

	// Align the absolute address, not just the offset: the buffer
	// itself may start anywhere.
	base := uintptr(unsafe.Pointer(&a.buf[0]))
	aligned := align.UpAddr(base+uintptr(a.off), uintptr(alignment))
	start := int(aligned - base)

	if start > len(a.buf) || size > len(a.buf)-start {
		return nil, ErrArenaFull
	}

	a.off = start + size
	return a.buf[start:a.off:a.off], nil
}

// Reset discards all carved regions, making the full buffer available
// again. Slices returned by earlier Alloc calls still alias the buffer
// and must not be used afterwards.
func (a *Arena) Reset() {
	a.off = 0
}

// Offset returns the number of buffer bytes consumed so far, padding
// included.
func (a *Arena) Offset() int {
	return a.off
}

// Cap returns the total buffer size.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Remaining returns the bytes still available before padding.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.off
}

func (a *Arena) String() string {
	return fmt.Sprintf("Arena{cap: %d, used: %d, remaining: %d}", a.Cap(), a.off, a.Remaining())
}
