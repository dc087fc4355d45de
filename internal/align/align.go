// Package align provides power-of-two alignment arithmetic.
//
// All rounding functions assume the alignment is a power of two and use
// bitmask arithmetic. Callers validate alignments up front (or via
// IsPowerOfTwo) because the masks silently misbehave on other values.
// This is an internal package - external users interact with billow.Layout.
package align

// IsPowerOfTwo reports whether a is a power of two.
// Zero and negative values are not powers of two.
func IsPowerOfTwo(a int) bool {
	return a > 0 && a&(a-1) == 0
}

// Up rounds v up to the next multiple of a.
// a must be a power of two.
func Up(v, a int) int {
	return (v + a - 1) &^ (a - 1)
}

// Down rounds v down to the previous multiple of a.
// a must be a power of two.
func Down(v, a int) int {
	return v &^ (a - 1)
}

// UpAddr rounds the address p up to the next multiple of a.
// a must be a power of two.
func UpAddr(p, a uintptr) uintptr {
	return (p + a - 1) &^ (a - 1)
}

// DownAddr rounds the address p down to the previous multiple of a.
// a must be a power of two.
func DownAddr(p, a uintptr) uintptr {
	return p &^ (a - 1)
}
