package billow

import (
	"fmt"
	"math"
	"sort"

	"github.com/msiglreith/norse-billow/internal/align"
	"github.com/msiglreith/norse-billow/internal/conv"
)

// Slot identifies one registered field of a block layout.
//
// Slots are dense handles assigned in registration order starting at 0.
// Registering the same type twice yields two distinct slots and two
// distinct sub-arrays in every applied block.
type Slot uint32

// maxFields bounds the number of registrations so slots stay
// representable.
const maxFields = 1 << 32

// field is one registration in insertion order.
type field struct {
	slot   Slot
	layout Layout
}

// Builder accumulates field registrations for a block layout.
//
// The zero value is ready to use. A Builder is not safe for concurrent
// use; the BlockLayout produced by Finish is.
type Builder struct {
	fields   []field
	maxAlign int
	sizeSum  uint64
	overflow bool
	done     bool
}

// NewBuilder returns an empty layout builder.
func NewBuilder() *Builder {
	return &Builder{maxAlign: 1}
}

// AddLayout registers one field with the given layout and returns its
// slot. The slot equals the number of fields registered before the call.
//
// l must be a valid field layout: align a power of two and size a
// non-negative multiple of align (always true for layouts produced by
// Of). AddLayout panics on an invalid layout or when called after
// Finish; it has no failure modes for well-formed inputs.
func (b *Builder) AddLayout(l Layout) Slot {
	if b.done {
		panic("billow: AddLayout called after Finish")
	}
	if err := validField(l); err != nil {
		panic("billow: " + err.Error())
	}
	if uint64(len(b.fields)) >= maxFields {
		panic("billow: too many fields")
	}

	slot := Slot(len(b.fields))
	b.fields = append(b.fields, field{slot: slot, layout: l})

	if l.Align > b.maxAlign {
		b.maxAlign = l.Align
	}
	if b.sizeSum > math.MaxUint64-uint64(l.Size) {
		// Surfaced as ErrSizeOverflow by Finish; registration itself
		// cannot fail.
		b.overflow = true
	}
	b.sizeSum += uint64(l.Size)

	return slot
}

// Add registers the type T as one field and returns a typed handle for
// it. The handle carries T so that later block access is checked against
// the registration (see TypedSlot).
func Add[T any](b *Builder) TypedSlot[T] {
	return TypedSlot[T]{slot: b.AddLayout(Of[T]())}
}

// NumFields returns the number of fields registered so far.
func (b *Builder) NumFields() int {
	return len(b.fields)
}

// Finish bakes the registrations into an immutable BlockLayout and marks
// the builder as consumed; further AddLayout or Finish calls panic.
//
// Fields are ordered by descending alignment, ties broken by
// registration order. With every field size a multiple of its own
// alignment, this ordering alone guarantees that each sub-array offset
// in an applied block is a multiple of its field's alignment, so no
// padding is ever inserted between sub-arrays. The element stride is the
// plain sum of the field sizes.
//
// Finish returns ErrSizeOverflow if the summed size, or its round-up to
// the block alignment, does not fit in an int. A builder with no
// registrations yields a valid empty layout (size 0, align 1).
func (b *Builder) Finish() (*BlockLayout, error) {
	if b.done {
		panic("billow: Finish called twice")
	}
	b.done = true

	if b.overflow {
		return nil, fmt.Errorf("%w: field sizes exceed uint64", ErrSizeOverflow)
	}
	size, err := conv.Uint64ToInt(b.sizeSum)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSizeOverflow, err)
	}
	if align.Up(size, b.maxAlign) < size {
		return nil, fmt.Errorf("%w: size %d rounded to align %d", ErrSizeOverflow, size, b.maxAlign)
	}

	ordered := make([]field, len(b.fields))
	copy(ordered, b.fields)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].layout.Align != ordered[j].layout.Align {
			return ordered[i].layout.Align > ordered[j].layout.Align
		}
		return ordered[i].slot < ordered[j].slot
	})

	packed := make([]Layout, len(ordered))
	posBySlot := make([]uint32, len(ordered))
	for pos, f := range ordered {
		packed[pos] = f.layout
		posBySlot[f.slot] = uint32(pos)
	}

	return &BlockLayout{
		element:   Layout{Size: size, Align: b.maxAlign},
		packed:    packed,
		posBySlot: posBySlot,
	}, nil
}

// MustFinish is like Finish but panics on error. It is intended for
// layouts built from static field sets where overflow is impossible.
func (b *Builder) MustFinish() *BlockLayout {
	l, err := b.Finish()
	if err != nil {
		panic(err)
	}
	return l
}
