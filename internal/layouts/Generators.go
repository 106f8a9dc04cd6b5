package layouts

import (
	"math/rand"

	"github.com/Mshel/micromouse/internal/maze"
)

type cell struct {
	col, row int
}

var offsets = map[maze.Direction]cell{
	maze.North: {0, 1},
	maze.East:  {1, 0},
	maze.South: {0, -1},
	maze.West:  {-1, 0},
}

func (c cell) step(d maze.Direction) cell {
	o := offsets[d]
	return cell{c.col + o.col, c.row + o.row}
}

// builder carves passages into a fully walled layout, keeping both sides of
// every boundary in agreement.
type builder struct {
	size   int
	layout maze.Layout
}

func newBuilder(size int) *builder {
	layout := make(maze.Layout, size)
	for col := range layout {
		layout[col] = make([]byte, size)
		for row := range layout[col] {
			layout[col][row] = maze.WallAll
		}
	}
	return &builder{size: size, layout: layout}
}

func (b *builder) inside(c cell) bool {
	return c.col >= 0 && c.row >= 0 && c.col < b.size && c.row < b.size
}

func (b *builder) open(c cell, d maze.Direction) {
	next := c.step(d)
	if !b.inside(c) || !b.inside(next) {
		return
	}
	b.layout[c.col][c.row] &^= maze.WallMask(d)
	b.layout[next.col][next.row] &^= maze.WallMask(d.Opposite())
}

func (b *builder) neighbours(c cell) []maze.Direction {
	var result []maze.Direction
	for _, d := range maze.Directions {
		if b.inside(c.step(d)) {
			result = append(result, d)
		}
	}
	return result
}

// openCenter knocks down the walls inside the 2x2 goal area of an even-sized layout.
func (b *builder) openCenter() {
	mid := b.size / 2
	if b.size%2 != 0 || b.size < 2 {
		return
	}
	b.open(cell{mid - 1, mid - 1}, maze.East)
	b.open(cell{mid - 1, mid - 1}, maze.North)
	b.open(cell{mid, mid - 1}, maze.North)
	b.open(cell{mid - 1, mid}, maze.East)
}

// Open is an empty arena: only the outer walls are present.
func Open(size int) maze.Layout {
	b := newBuilder(size)
	for col := 0; col < size; col++ {
		for row := 0; row < size; row++ {
			b.open(cell{col, row}, maze.North)
			b.open(cell{col, row}, maze.East)
		}
	}
	return b.layout
}

// Serpentine is a single corridor snaking up and down the columns, starting
// at the origin.
func Serpentine(size int) maze.Layout {
	b := newBuilder(size)
	for col := 0; col < size; col++ {
		for row := 0; row < size-1; row++ {
			b.open(cell{col, row}, maze.North)
		}
		if col%2 == 0 {
			b.open(cell{col, size - 1}, maze.East)
		} else {
			b.open(cell{col, 0}, maze.East)
		}
	}
	return b.layout
}

// Wilson generates a perfect maze with Wilson's algorithm (loop-erased random
// walks) and then opens the goal area in the middle. The same size and seed
// always produce the same layout.
func Wilson(size int, seed int64) maze.Layout {
	rng := rand.New(rand.NewSource(seed))
	b := newBuilder(size)

	inTree := make(map[cell]bool, size*size)
	inTree[cell{rng.Intn(size), rng.Intn(size)}] = true
	remaining := size*size - 1

	for remaining > 0 {
		start := cell{rng.Intn(size), rng.Intn(size)}
		if inTree[start] {
			continue
		}

		// walk until the tree is hit; revisiting a cell overwrites its exit,
		// which erases the loop
		exits := make(map[cell]maze.Direction)
		for current := start; !inTree[current]; {
			options := b.neighbours(current)
			d := options[rng.Intn(len(options))]
			exits[current] = d
			current = current.step(d)
		}

		for current := start; !inTree[current]; {
			d := exits[current]
			b.open(current, d)
			inTree[current] = true
			remaining--
			current = current.step(d)
		}
	}

	b.openCenter()
	return b.layout
}
