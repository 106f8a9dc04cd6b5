package maze

import (
	"errors"
	"fmt"
)

// MaxGridSize is the largest side a WallGrid supports: one uint64 word per column.
const MaxGridSize = 64

var ErrGridSize = errors.New("wall grid size out of range")

// WallGrid is a square bit matrix of boundaries. A set bit means the boundary
// is open. Bit y of columns[x] holds boundary (x, y).
//
// Coordinates outside the grid are never an error: Get reports them as closed
// and Set/Clear ignore them, which is the same as having a wall there.
type WallGrid struct {
	size    int
	columns []uint64
}

func NewWallGrid(size int) (*WallGrid, error) {
	if size < 1 || size > MaxGridSize {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrGridSize, size, MaxGridSize)
	}

	return &WallGrid{
		size:    size,
		columns: make([]uint64, size),
	}, nil
}

func (g *WallGrid) Size() int {
	return g.size
}

func (g *WallGrid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.size && y < g.size
}

// Set marks boundary (x, y) open.
func (g *WallGrid) Set(x, y int) {
	if g.inBounds(x, y) {
		g.columns[x] |= 1 << uint(y)
	}
}

// Clear marks boundary (x, y) walled.
func (g *WallGrid) Clear(x, y int) {
	if g.inBounds(x, y) {
		g.columns[x] &^= 1 << uint(y)
	}
}

// Get reports whether boundary (x, y) is open.
func (g *WallGrid) Get(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.columns[x]&(1<<uint(y)) != 0
}

func (g *WallGrid) ClearAll() {
	for x := range g.columns {
		g.columns[x] = 0
	}
}

func (g *WallGrid) SetAll() {
	// only the low size bits of each column belong to the grid
	mask := ^uint64(0)
	if g.size < MaxGridSize {
		mask = (1 << uint(g.size)) - 1
	}
	for x := range g.columns {
		g.columns[x] = mask
	}
}
