package layouts

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mshel/micromouse/internal/maze"
)

func decode(t *testing.T, layout maze.Layout) *maze.Maze {
	t.Helper()
	m, err := maze.New(maze.LayoutTable{layout}, 0, maze.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	return m
}

// reachable counts the cells connected to the origin.
func reachable(m *maze.Maze) int {
	seen := map[cell]bool{{0, 0}: true}
	queue := []cell{{0, 0}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range maze.Directions {
			if !m.IsOpen(c.col, c.row, d) {
				continue
			}
			next := c.step(d)
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return len(seen)
}

func assertConsistentWalls(t *testing.T, layout maze.Layout) {
	t.Helper()
	size := len(layout)
	b := &builder{size: size, layout: layout}

	for col := 0; col < size; col++ {
		require.Len(t, layout[col], size)
		for row := 0; row < size; row++ {
			c := cell{col, row}
			for _, d := range maze.Directions {
				wall := layout[col][row]&maze.WallMask(d) != 0
				next := c.step(d)
				if !b.inside(next) {
					assert.True(t, wall, "outer wall missing at %v %s", c, d)
					continue
				}
				other := layout[next.col][next.row]&maze.WallMask(d.Opposite()) != 0
				assert.Equal(t, wall, other, "%v %s disagrees with its neighbour", c, d)
			}
		}
	}
}

func TestGeneratorsProduceConsistentWalls(t *testing.T) {
	for name, layout := range map[string]maze.Layout{
		"open":       Open(DefaultSize),
		"serpentine": Serpentine(DefaultSize),
		"wilson":     Wilson(DefaultSize, 1),
		"wilson odd": Wilson(7, 3),
	} {
		t.Run(name, func(t *testing.T) {
			assertConsistentWalls(t, layout)
		})
	}
}

func TestWilsonIsConnectedAndDeterministic(t *testing.T) {
	layout := Wilson(DefaultSize, wilsonSeed)
	assert.Equal(t, layout, Wilson(DefaultSize, wilsonSeed))
	assert.NotEqual(t, layout, Wilson(DefaultSize, wilsonAltSeed))

	m := decode(t, layout)
	assert.Equal(t, DefaultSize*DefaultSize, reachable(m))

	mid := DefaultSize / 2
	assert.True(t, m.IsOpen(mid-1, mid-1, maze.East))
	assert.True(t, m.IsOpen(mid-1, mid-1, maze.North))
	assert.True(t, m.IsOpen(mid, mid, maze.South))
	assert.True(t, m.IsOpen(mid, mid, maze.West))
}

func TestOpenHasNoInteriorWalls(t *testing.T) {
	m := decode(t, Open(4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			assert.True(t, m.IsOpen(x, y, maze.North))
			assert.True(t, m.IsOpen(y, x, maze.East))
		}
	}
}

func TestSerpentineIsOneCorridor(t *testing.T) {
	m := decode(t, Serpentine(4))

	assert.Equal(t, 16, reachable(m))
	assert.True(t, m.IsOpen(0, 0, maze.North))
	assert.False(t, m.IsOpen(0, 0, maze.East))
	assert.True(t, m.IsOpen(0, 3, maze.East))
	assert.True(t, m.IsOpen(1, 0, maze.East))
	assert.False(t, m.IsOpen(1, 3, maze.East))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"wilson", "open", "serpentine", "wilson-alt"}, r.Names())
	assert.Equal(t, "serpentine", r.Name(LayoutSerpentine))
	assert.Equal(t, "", r.Name(42))
	assert.Nil(t, r.Layout(-1))

	id, ok := r.ByName("open")
	require.True(t, ok)
	assert.Equal(t, LayoutOpen, id)

	_, ok = r.ByName("camm-2012")
	assert.False(t, ok)

	custom := r.Register("open", Open(4))
	id, ok = r.ByName("open")
	require.True(t, ok)
	assert.Equal(t, custom, id)
	assert.Len(t, r.Layout(id), 4)
}

func TestRegistryFallbackThroughMaze(t *testing.T) {
	r := NewRegistry()
	m, err := maze.New(r, 99, maze.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)

	want := decode(t, r.Layout(LayoutWilson))
	assert.Equal(t, want.Render(nil, 1), m.Render(nil, 1))
}
