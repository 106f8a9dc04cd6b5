package maze

// Each layout byte stores wall presence in its low nibble as WSEN.
// A set bit means there is a wall on that side of the cell.
const (
	WallNorth byte = 1 << 0
	WallEast  byte = 1 << 1
	WallSouth byte = 1 << 2
	WallWest  byte = 1 << 3

	WallAll = WallNorth | WallEast | WallSouth | WallWest
)

// LayoutID selects a layout from a LayoutSource.
type LayoutID int

// DefaultLayoutID is used whenever a requested id is out of range.
const DefaultLayoutID LayoutID = 0

// Layout is an N x N matrix of wall bytes stored column major: layout[col][row].
// Row 0 is the southern edge, column 0 the western one.
type Layout [][]byte

// LayoutSource supplies layouts by id. Ids are dense: 0 <= id < Len().
type LayoutSource interface {
	Len() int
	Layout(id LayoutID) Layout
}

// LayoutTable is the simplest LayoutSource: a slice indexed by id.
type LayoutTable []Layout

func (t LayoutTable) Len() int {
	return len(t)
}

func (t LayoutTable) Layout(id LayoutID) Layout {
	if id < 0 || int(id) >= len(t) {
		return nil
	}
	return t[id]
}

// WallMask returns the layout bit for the wall on side d of a cell.
func WallMask(d Direction) byte {
	switch d {
	case North:
		return WallNorth
	case East:
		return WallEast
	case South:
		return WallSouth
	case West:
		return WallWest
	default:
		return 0
	}
}

func (l Layout) size() (int, bool) {
	n := len(l)
	if n == 0 || n > MaxGridSize {
		return 0, false
	}
	for _, column := range l {
		if len(column) != n {
			return 0, false
		}
	}
	return n, true
}
