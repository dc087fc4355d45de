package billow

import (
	"fmt"
	"unsafe"
)

// Block is the result of applying a BlockLayout to one raw memory
// region: the common element count plus the start address of every
// field's sub-array.
//
// A Block is a non-owning view. It keeps a Go-allocated region alive
// for the garbage collector but never frees, moves, or initializes the
// underlying bytes; for foreign memory (ApplyPointer) the caller
// manages the lifetime and the block is invalidated when the region
// goes away. The field sub-arrays are disjoint byte ranges, so distinct
// fields may be written from different goroutines without coordination;
// elements within one field are the caller's to synchronize.
type Block struct {
	layout *BlockLayout
	base   unsafe.Pointer
	length int
	// Used byte range within the original region, after the start and
	// end were rounded inward to the element alignment.
	rangeStart int
	rangeEnd   int
	// Sub-array start addresses in slot order; nil when no element fits
	// or the layout has no fields.
	addrs []unsafe.Pointer
}

// Len returns the element count shared by every field's sub-array.
// For all-zero-size layouts it is UnboundedLen; see Unbounded.
func (b *Block) Len() int {
	return b.length
}

// Unbounded reports whether the element count is the UnboundedLen
// sentinel rather than a real capacity.
func (b *Block) Unbounded() bool {
	return b.length == UnboundedLen
}

// Range returns the byte range within the applied region that the block
// actually covers. start is the number of leading bytes skipped to
// reach the element alignment; end-start is the aligned usable size.
func (b *Block) Range() (start, end int) {
	return b.rangeStart, b.rangeEnd
}

// NumFields returns the number of fields in the originating layout.
func (b *Block) NumFields() int {
	return b.layout.NumFields()
}

// Pointer returns the start address of the slot's sub-array, or nil if
// the block holds no elements. It panics if s was not returned by the
// originating builder.
func (b *Block) Pointer(s Slot) unsafe.Pointer {
	b.layout.checkSlot(s)
	if b.addrs == nil {
		return nil
	}
	return b.addrs[s]
}

// Raw returns the slot's sub-array start reinterpreted as *T, together
// with the element count.
//
// The cast is unchecked: the caller must guarantee that T has exactly
// the size and alignment registered for the slot, and anything else is
// undefined behavior. Use TypedSlot for the checked variant.
func Raw[T any](b *Block, s Slot) (*T, int) {
	return (*T)(b.Pointer(s)), b.length
}

// View returns the slot's sub-array as a mutable []T of Len elements.
//
// Same unchecked contract as Raw. The elements are whatever bytes the
// region held; the caller must treat them as uninitialized until
// written. View returns nil when the block holds no elements. For an
// unbounded block only a zero-size T yields a usable slice; the runtime
// refuses a slice of UnboundedLen elements of any other type.
func View[T any](b *Block, s Slot) []T {
	p := b.Pointer(s)
	if p == nil || b.length == 0 {
		return nil
	}
	return unsafe.Slice((*T)(p), b.length)
}

// TypedSlot is a slot handle that remembers the Go type it was
// registered with (see Add). Its accessors verify at access time that
// the block's registration for the slot matches T, turning a
// cross-layout handle mix-up into a panic instead of a silent
// misaligned view.
type TypedSlot[T any] struct {
	slot Slot
}

// Slot returns the underlying untyped handle.
func (s TypedSlot[T]) Slot() Slot {
	return s.slot
}

func (s TypedSlot[T]) check(b *Block) {
	want := Of[T]()
	if got := b.layout.Field(s.slot); got != want {
		panic(fmt.Sprintf("billow: slot %d registered as %s, accessed as %s", s.slot, got, want))
	}
}

// Raw is the checked form of the package-level Raw.
func (s TypedSlot[T]) Raw(b *Block) (*T, int) {
	s.check(b)
	return Raw[T](b, s.slot)
}

// Slice is the checked form of View.
func (s TypedSlot[T]) Slice(b *Block) []T {
	s.check(b)
	return View[T](b, s.slot)
}
