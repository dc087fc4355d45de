package billow_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msiglreith/norse-billow"
	"github.com/msiglreith/norse-billow/region"
)

func TestViewReadWrite(t *testing.T) {
	b := billow.NewBuilder()
	ids := billow.Add[uint64](b)
	scores := billow.Add[float32](b)
	flags := billow.Add[byte](b)
	layout := b.MustFinish() // stride 13, align 8

	buf := region.AlignedBytes(13*16, 8)
	blk := layout.Apply(buf)
	require.Equal(t, 16, blk.Len())

	idView := ids.Slice(blk)
	scoreView := scores.Slice(blk)
	flagView := flags.Slice(blk)
	require.Len(t, idView, 16)
	require.Len(t, scoreView, 16)
	require.Len(t, flagView, 16)

	for i := 0; i < blk.Len(); i++ {
		idView[i] = uint64(i) * 100
		scoreView[i] = float32(i) / 2
		flagView[i] = byte(i)
	}

	// Sub-arrays are disjoint: every value written above survives the
	// writes to the other fields.
	for i := 0; i < blk.Len(); i++ {
		assert.Equal(t, uint64(i)*100, idView[i])
		assert.Equal(t, float32(i)/2, scoreView[i])
		assert.Equal(t, byte(i), flagView[i])
	}
}

func TestRaw(t *testing.T) {
	b := billow.NewBuilder()
	s := b.AddLayout(billow.Layout{Size: 8, Align: 8})
	layout := b.MustFinish()

	buf := region.AlignedBytes(64, 8)
	blk := layout.Apply(buf)

	p, n := billow.Raw[uint64](blk, s)
	assert.Equal(t, unsafe.Pointer(p), blk.Pointer(s))
	assert.Equal(t, 8, n)

	*p = 99
	assert.Equal(t, uint64(99), billow.View[uint64](blk, s)[0])
}

func TestTypedSlotChecked(t *testing.T) {
	b := billow.NewBuilder()
	id := billow.Add[uint64](b)
	layout := b.MustFinish()

	blk := layout.Apply(region.AlignedBytes(64, 8))

	view := id.Slice(blk)
	require.Len(t, view, 8)

	p, n := id.Raw(blk)
	assert.NotNil(t, p)
	assert.Equal(t, 8, n)
}

func TestTypedSlotMismatch(t *testing.T) {
	// A handle from one builder used against a block whose layout
	// registered a different type under the same slot.
	b1 := billow.NewBuilder()
	id := billow.Add[uint64](b1)
	b1.MustFinish()

	b2 := billow.NewBuilder()
	billow.Add[byte](b2)
	blk := b2.MustFinish().Apply(region.AlignedBytes(64, 8))

	assert.Panics(t, func() { id.Slice(blk) })
	assert.Panics(t, func() { id.Raw(blk) })
}

func TestPointerOutOfRange(t *testing.T) {
	b := billow.NewBuilder()
	b.AddLayout(billow.Layout{Size: 4, Align: 4})
	blk := b.MustFinish().Apply(region.AlignedBytes(64, 4))

	assert.Panics(t, func() { blk.Pointer(1) })
	assert.Panics(t, func() { billow.View[uint32](blk, 7) })
}

func TestViewEmptyBlock(t *testing.T) {
	b := billow.NewBuilder()
	s := b.AddLayout(billow.Layout{Size: 8, Align: 8})
	layout := b.MustFinish()

	blk := layout.Apply(make([]byte, 7)) // too small for one element
	assert.Equal(t, 0, blk.Len())
	assert.Nil(t, billow.View[uint64](blk, s))

	blk = layout.Apply(nil)
	assert.Nil(t, billow.View[uint64](blk, s))
}

func TestUnboundedBlock(t *testing.T) {
	b := billow.NewBuilder()
	marker := billow.Add[struct{}](b)
	layout := b.MustFinish()

	buf := region.AlignedBytes(16, 1)
	blk := layout.Apply(buf)

	assert.True(t, blk.Unbounded())

	view := marker.Slice(blk)
	assert.Len(t, view, billow.UnboundedLen)

	p, n := marker.Raw(blk)
	assert.Equal(t, unsafe.Pointer(&buf[0]), unsafe.Pointer(p))
	assert.Equal(t, billow.UnboundedLen, n)
}

func TestBlockRangeAndNumFields(t *testing.T) {
	b := billow.NewBuilder()
	b.AddLayout(billow.Layout{Size: 4, Align: 4})
	b.AddLayout(billow.Layout{Size: 1, Align: 1})
	blk := b.MustFinish().Apply(region.AlignedBytes(100, 4))

	assert.Equal(t, 2, blk.NumFields())
	start, end := blk.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 100, end)
}
