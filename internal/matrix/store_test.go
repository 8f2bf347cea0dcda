package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewColumnMajorAddressing(t *testing.T) {
	store, err := NewStore[int32](2, 12)
	require.NoError(t, err)

	v := store.View(0, 3, 4)
	for c := 0; c < 4; c++ {
		for r := 0; r < 3; r++ {
			v.Set(r, c, int32(c*10+r))
		}
	}
	for c := 0; c < 4; c++ {
		for r := 0; r < 3; r++ {
			assert.Equal(t, int32(c*10+r), v.At(r, c))
		}
	}
}

func TestViewsAreIsolatedAcrossBatches(t *testing.T) {
	store, err := NewStore[int32](2, 6)
	require.NoError(t, err)

	v0 := store.View(0, 2, 3)
	v1 := store.View(1, 2, 3)
	v0.Set(0, 0, 99)
	assert.NotEqual(t, int32(99), v1.At(0, 0))
}

func TestSetColumnAndCopyToHost(t *testing.T) {
	store, err := NewStore[uint32](1, 9)
	require.NoError(t, err)
	v := store.View(0, 3, 3)
	v.SetColumn(1, []uint32{7, 8, 9})

	host := v.CopyToHost()
	require.Len(t, host, 3)
	assert.Equal(t, uint32(7), host[0][1])
	assert.Equal(t, uint32(8), host[1][1])
	assert.Equal(t, uint32(9), host[2][1])
}

func TestViewPanicsOnOutOfRangeBatch(t *testing.T) {
	store, err := NewStore[int32](1, 4)
	require.NoError(t, err)
	assert.Panics(t, func() { store.View(1, 2, 2) })
}

func TestViewPanicsWhenExceedingElementsPerBatch(t *testing.T) {
	store, err := NewStore[int32](1, 4)
	require.NoError(t, err)
	assert.Panics(t, func() { store.View(0, 3, 3) })
}

func TestNewStoreRejectsNonPositiveDimensions(t *testing.T) {
	_, err := NewStore[int32](0, 4)
	assert.Error(t, err)
	_, err = NewStore[int32](4, 0)
	assert.Error(t, err)
}
