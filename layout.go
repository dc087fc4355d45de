package billow

import (
	"fmt"
	"unsafe"

	"github.com/msiglreith/norse-billow/internal/align"
)

// Layout describes the size and alignment of one field type, in bytes.
//
// A Layout is valid when Size is non-negative, Align is a power of two,
// and Size rounded up to a multiple of Align still fits in an int. Field
// registration (Builder.AddLayout) additionally requires Size to be a
// multiple of Align; layouts derived from Go types via Of always satisfy
// this, and it is what lets the packing scheme place sub-arrays back to
// back without padding.
//
// The zero value is not a valid field layout; construct layouts with Of
// or NewLayout.
type Layout struct {
	Size  int
	Align int
}

// Of returns the layout of the Go type T.
func Of[T any]() Layout {
	var z T
	return Layout{
		Size:  int(unsafe.Sizeof(z)),
		Align: int(unsafe.Alignof(z)),
	}
}

// NewLayout constructs a Layout from an explicit size/alignment pair.
//
// It returns ErrInvalidLayout if align is not a power of two or size is
// negative, and ErrSizeOverflow if size rounded up to a multiple of align
// does not fit in an int. Unlike field registration, size does not have
// to be a multiple of align: the element layout of a finished block (for
// example 43 bytes at alignment 8) is a valid Layout.
func NewLayout(size, alignment int) (Layout, error) {
	if !align.IsPowerOfTwo(alignment) {
		return Layout{}, fmt.Errorf("%w: align %d is not a power of two", ErrInvalidLayout, alignment)
	}
	if size < 0 {
		return Layout{}, fmt.Errorf("%w: negative size %d", ErrInvalidLayout, size)
	}
	if align.Up(size, alignment) < size {
		return Layout{}, fmt.Errorf("%w: size %d rounded to align %d", ErrSizeOverflow, size, alignment)
	}
	return Layout{Size: size, Align: alignment}, nil
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	return fmt.Sprintf("{size=%d align=%d}", l.Size, l.Align)
}

// validField reports why l cannot be registered as a field, or nil.
func validField(l Layout) error {
	if !align.IsPowerOfTwo(l.Align) {
		return fmt.Errorf("field align %d is not a power of two", l.Align)
	}
	if l.Size < 0 {
		return fmt.Errorf("negative field size %d", l.Size)
	}
	if l.Size%l.Align != 0 {
		return fmt.Errorf("field size %d is not a multiple of align %d", l.Size, l.Align)
	}
	return nil
}
