package region

import (
	"errors"
	"os"
	"sync/atomic"

	"github.com/msiglreith/norse-billow/internal/align"
)

var (
	// ErrClosed is returned when accessing a closed mapping.
	ErrClosed = errors.New("region: mapping is closed")
	// ErrInvalidSize is returned when a mapping size is not positive.
	ErrInvalidSize = errors.New("region: invalid mapping size")
)

// Mapping is an anonymous read-write memory mapping obtained from the
// OS. Its pages live outside the Go garbage collector and start on a
// page boundary, which satisfies any element alignment a layout can
// carry. The Mapping owns the pages and releases them on Close.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific release function.
	unmap func([]byte) error
}

// MapAnon maps size bytes of zero-filled anonymous memory. The mapped
// length is size rounded up to the page size; Size reports the rounded
// value.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	size = align.Up(size, os.Getpagesize())

	data, unmap, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		data:  data,
		size:  size,
		unmap: unmap,
	}, nil
}

// Bytes returns the mapped memory, or nil after Close.
// The slice is valid only until Close is called.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the mapped size in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Close releases the pages back to the OS. It is idempotent. Any slice
// or block derived from the mapping is invalid afterwards.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}
