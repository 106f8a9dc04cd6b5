package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallGridRejectsBadSizes(t *testing.T) {
	for _, size := range []int{-1, 0, MaxGridSize + 1} {
		_, err := NewWallGrid(size)
		assert.ErrorIs(t, err, ErrGridSize, "size %d", size)
	}

	grid, err := NewWallGrid(MaxGridSize)
	require.NoError(t, err)
	assert.Equal(t, MaxGridSize, grid.Size())
}

func TestWallGridSetClearGet(t *testing.T) {
	grid, err := NewWallGrid(16)
	require.NoError(t, err)

	assert.False(t, grid.Get(3, 7), "new grid must be closed")

	grid.Set(3, 7)
	assert.True(t, grid.Get(3, 7))
	assert.False(t, grid.Get(7, 3), "x and y must not be swapped")
	assert.False(t, grid.Get(3, 6))

	grid.Clear(3, 7)
	assert.False(t, grid.Get(3, 7))
}

func TestWallGridOutOfRangeIsClosedAndIgnored(t *testing.T) {
	grid, err := NewWallGrid(16)
	require.NoError(t, err)
	grid.Set(0, 0)
	before := append([]uint64(nil), grid.columns...)

	outside := [][2]int{{16, 0}, {0, 16}, {-1, 0}, {0, -1}, {100, 100}}
	for _, c := range outside {
		grid.Set(c[0], c[1])
		assert.False(t, grid.Get(c[0], c[1]), "get %v", c)
		grid.Clear(c[0], c[1])
	}

	assert.Equal(t, before, grid.columns)
	assert.True(t, grid.Get(0, 0))
}

func TestWallGridBulkOperations(t *testing.T) {
	grid, err := NewWallGrid(5)
	require.NoError(t, err)

	grid.SetAll()
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			assert.True(t, grid.Get(x, y))
		}
	}
	assert.False(t, grid.Get(5, 0))
	assert.Equal(t, uint64(0x1f), grid.columns[0], "bits past the grid stay clear")

	grid.ClearAll()
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			assert.False(t, grid.Get(x, y))
		}
	}
}

func TestWallGridWidestRow(t *testing.T) {
	grid, err := NewWallGrid(MaxGridSize)
	require.NoError(t, err)

	grid.Set(MaxGridSize-1, MaxGridSize-1)
	assert.True(t, grid.Get(MaxGridSize-1, MaxGridSize-1))

	grid.SetAll()
	assert.Equal(t, ^uint64(0), grid.columns[0])
}
