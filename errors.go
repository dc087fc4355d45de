package billow

import (
	"errors"
)

var (
	// ErrInvalidLayout is returned when a size/alignment pair does not
	// describe a representable layout.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrSizeOverflow is returned when a layout computation exceeds the
	// range of int.
	ErrSizeOverflow = errors.New("layout size overflows int")

	// ErrInvalidCount is returned when a negative element count is
	// supplied.
	ErrInvalidCount = errors.New("element count must be non-negative")
)
