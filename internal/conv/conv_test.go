package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64ToInt(t *testing.T) {
	v, err := Uint64ToInt(0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = Uint64ToInt(uint64(math.MaxInt))
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, v)

	_, err = Uint64ToInt(uint64(math.MaxInt) + 1)
	assert.Error(t, err)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}

func TestMulInt(t *testing.T) {
	v, err := MulInt(43, 11)
	require.NoError(t, err)
	assert.Equal(t, 473, v)

	v, err = MulInt(0, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = MulInt(math.MaxInt, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, v)

	_, err = MulInt(math.MaxInt, 2)
	assert.Error(t, err)

	_, err = MulInt(math.MaxInt/2+1, 2)
	assert.Error(t, err)

	_, err = MulInt(-1, 4)
	assert.Error(t, err)

	_, err = MulInt(4, -1)
	assert.Error(t, err)
}
