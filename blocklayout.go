package billow

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/msiglreith/norse-billow/internal/align"
	"github.com/msiglreith/norse-billow/internal/conv"
)

// UnboundedLen is the element count reported by Apply for layouts whose
// element stride is zero (every registered field is zero-sized). Such
// fields impose no storage constraint, so any region holds arbitrarily
// many elements; callers must not use UnboundedLen as an iteration bound
// without knowing an intended count from elsewhere.
const UnboundedLen = math.MaxInt

// BlockLayout is the packed description of a block produced by
// Builder.Finish.
//
// It records the element stride (the sum of all field sizes, with no
// padding between sub-arrays), the block alignment (the maximum field
// alignment), and the packing order of the fields. A BlockLayout is
// immutable and safe for concurrent use; one layout may be applied to
// any number of regions.
type BlockLayout struct {
	element Layout
	// packed holds the registered field layouts in packing order:
	// descending alignment, ties broken by ascending slot.
	packed []Layout
	// posBySlot maps a slot to its position in packed.
	posBySlot []uint32
}

// Element returns the layout of one logical element: stride (sum of the
// field sizes) and alignment (max of the field alignments).
func (bl *BlockLayout) Element() Layout {
	return bl.element
}

// NumFields returns the number of registered fields.
func (bl *BlockLayout) NumFields() int {
	return len(bl.packed)
}

// Field returns the layout registered for the given slot. It panics if
// s was not returned by the originating builder.
func (bl *BlockLayout) Field(s Slot) Layout {
	bl.checkSlot(s)
	return bl.packed[bl.posBySlot[s]]
}

func (bl *BlockLayout) checkSlot(s Slot) {
	if int(s) >= len(bl.posBySlot) {
		panic(fmt.Sprintf("billow: slot %d out of range (layout has %d fields)", s, len(bl.posBySlot)))
	}
}

// SizeFor returns the number of bytes a region must provide for n
// elements, assuming the region starts at an address aligned to the
// element alignment. It returns ErrInvalidCount for negative n and
// ErrSizeOverflow if the byte count does not fit in an int.
func (bl *BlockLayout) SizeFor(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	size, err := conv.MulInt(bl.element.Size, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %d elements of stride %d", ErrSizeOverflow, n, bl.element.Size)
	}
	return size, nil
}

// Apply carves buf into one sub-array per field and returns the
// resulting Block. The block keeps buf's backing array alive but never
// reads, writes, or resizes it; see ApplyPointer for the carving rules.
func (bl *BlockLayout) Apply(buf []byte) *Block {
	if len(buf) == 0 {
		return bl.apply(nil, 0)
	}
	return bl.apply(unsafe.Pointer(&buf[0]), len(buf))
}

// ApplyPointer is Apply for memory that is not backed by a Go slice
// (foreign allocations, mapped pages). base is the first byte of the
// region and size its usable byte count.
//
// The region actually used is base..base+size shrunk inward to the
// element alignment; Block.Range reports how much was trimmed. The
// element count is the largest number of whole elements the aligned
// region holds. Each field's sub-array is placed back to back in
// packing order, which by construction lands every sub-array on its
// field's alignment. Applying a zero-field layout yields a degenerate
// block with length 0 and no field addresses.
//
// ApplyPointer is pure arithmetic: the region's bytes are never
// touched, and the result is invalidated if the caller frees, moves,
// or shrinks the region.
func (bl *BlockLayout) ApplyPointer(base unsafe.Pointer, size int) *Block {
	if size < 0 {
		panic(fmt.Sprintf("billow: negative region size %d", size))
	}
	return bl.apply(base, size)
}

func (bl *BlockLayout) apply(base unsafe.Pointer, size int) *Block {
	if len(bl.packed) == 0 {
		return &Block{layout: bl}
	}
	if !align.IsPowerOfTwo(bl.element.Align) {
		// Only reachable through a corrupted BlockLayout; the bitmask
		// rounding below would silently misbehave.
		panic(fmt.Sprintf("billow: corrupted layout: element align %d is not a power of two", bl.element.Align))
	}

	a := uintptr(bl.element.Align)
	baseAddr := uintptr(base)
	start := align.UpAddr(baseAddr, a)
	end := align.DownAddr(baseAddr+uintptr(size), a)

	var usable int
	if end > start {
		usable = int(end - start)
	}
	initialOffset := int(start - baseAddr)

	length := UnboundedLen
	if bl.element.Size > 0 {
		length = usable / bl.element.Size
	}

	b := &Block{
		layout:     bl,
		base:       base,
		length:     length,
		rangeStart: initialOffset,
		rangeEnd:   initialOffset + usable,
	}

	// A region smaller than one alignment unit can round to a start
	// past its end. No element fits there and Go forbids manufacturing
	// a pointer beyond the allocation, so the addresses stay nil.
	if initialOffset > size {
		return b
	}

	// Sub-array offsets, walked in packing order. Every offset is a sum
	// of size*length terms whose sizes are multiples of alignments no
	// smaller than the next field's, so each field lands on its own
	// alignment without padding.
	offset := 0
	offsets := make([]int, len(bl.packed))
	for pos, f := range bl.packed {
		if offset%f.Align != 0 {
			panic(fmt.Sprintf("billow: corrupted layout: field at packing position %d has offset %d, not a multiple of align %d", pos, offset, f.Align))
		}
		offsets[pos] = offset
		if f.Size > 0 && length != UnboundedLen {
			offset += f.Size * length
		}
	}

	b.addrs = make([]unsafe.Pointer, len(bl.posBySlot))
	for slot, pos := range bl.posBySlot {
		b.addrs[slot] = unsafe.Add(base, initialOffset+offsets[pos])
	}

	return b
}

// String returns a debug description of the layout in packing order.
func (bl *BlockLayout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "BlockLayout{element=%s, packing=[", bl.element)

	slotByPos := make([]Slot, len(bl.posBySlot))
	for slot, pos := range bl.posBySlot {
		slotByPos[pos] = Slot(slot)
	}
	for pos, f := range bl.packed {
		if pos > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d:%s", slotByPos[pos], f)
	}

	sb.WriteString("]}")
	return sb.String()
}
