// Package conv provides overflow-checked integer conversions and arithmetic.
//
// Layout construction sums and multiplies caller-supplied sizes; these
// helpers turn silent wraparound into reportable errors. For operations
// that are provably in range by domain constraints (offsets bounded by a
// region size, loop indices), use direct casts instead.
package conv

import (
	"fmt"
	"math"
)

// Uint64ToInt converts v to int, reporting overflow.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// MulInt multiplies two non-negative ints, reporting overflow.
func MulInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("integer overflow: %d * %d (negative operand)", a, b)
	}
	if a != 0 && b > math.MaxInt/a {
		return 0, fmt.Errorf("integer overflow: %d * %d exceeds int", a, b)
	}
	return a * b, nil
}
