package region

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAlloc(t *testing.T) {
	a := NewArenaSize(256)
	assert.Equal(t, 256, a.Cap())
	assert.Equal(t, 0, a.Offset())

	first, err := a.Alloc(100, 64)
	require.NoError(t, err)
	assert.Len(t, first, 100)
	assert.Zero(t, uintptr(unsafe.Pointer(&first[0]))%64)

	second, err := a.Alloc(32, 16)
	require.NoError(t, err)
	assert.Len(t, second, 32)
	assert.Zero(t, uintptr(unsafe.Pointer(&second[0]))%16)

	// Regions must not overlap.
	firstEnd := uintptr(unsafe.Pointer(&first[0])) + 100
	assert.GreaterOrEqual(t, uintptr(unsafe.Pointer(&second[0])), firstEnd)
}

func TestArenaFull(t *testing.T) {
	a := NewArenaSize(64)

	_, err := a.Alloc(64, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Remaining())

	_, err = a.Alloc(1, 1)
	assert.ErrorIs(t, err, ErrArenaFull)

	// Padding alone can exhaust the arena.
	b := NewArena(AlignedBytes(64, 64))
	_, err = b.Alloc(1, 1)
	require.NoError(t, err)
	_, err = b.Alloc(1, 64)
	assert.ErrorIs(t, err, ErrArenaFull)
}

func TestArenaReset(t *testing.T) {
	a := NewArenaSize(64)

	first, err := a.Alloc(64, 1)
	require.NoError(t, err)

	a.Reset()
	assert.Equal(t, 0, a.Offset())

	second, err := a.Alloc(64, 1)
	require.NoError(t, err)
	assert.Equal(t, unsafe.Pointer(&first[0]), unsafe.Pointer(&second[0]))
}

func TestArenaZeroSize(t *testing.T) {
	a := NewArenaSize(16)

	buf, err := a.Alloc(0, 8)
	require.NoError(t, err)
	assert.Empty(t, buf)

	empty := NewArena(nil)
	buf, err = empty.Alloc(0, 1)
	require.NoError(t, err)
	assert.Nil(t, buf)

	_, err = empty.Alloc(1, 1)
	assert.ErrorIs(t, err, ErrArenaFull)
}

func TestArenaUnalignedBuffer(t *testing.T) {
	backing := AlignedBytes(128+1, 64)

	// Deliberately misaligned start: one byte into an aligned buffer.
	a := NewArena(backing[1:])

	buf, err := a.Alloc(64, 64)
	require.NoError(t, err)
	assert.Zero(t, uintptr(unsafe.Pointer(&buf[0]))%64)
}

func TestArenaPanics(t *testing.T) {
	a := NewArenaSize(16)
	assert.Panics(t, func() { _, _ = a.Alloc(8, 3) })
	assert.Panics(t, func() { _, _ = a.Alloc(-1, 8) })
}
