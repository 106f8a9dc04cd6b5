package maze

// MazeView is everything a PathFinder may learn about the maze: what the
// mouse's sensors see from the current cell. It never exposes the wall grids.
type MazeView interface {
	WallInFront() bool
	WallOnLeft() bool
	WallOnRight() bool
	Heading() Direction
	Size() int
}

// CellInfoProvider annotates cells when a maze is rendered. Only the first
// maxLen runes of the result are drawn.
type CellInfoProvider interface {
	Info(x, y, maxLen int) string
}

// CellInfoFunc adapts a plain function to CellInfoProvider.
type CellInfoFunc func(x, y, maxLen int) string

func (f CellInfoFunc) Info(x, y, maxLen int) string {
	return f(x, y, maxLen)
}

// PathFinder drives the mouse. The run loop calls NextMovement with the
// current cell, where x is the column (0 is west) and y the row (0 is south),
// until it returns Finish.
type PathFinder interface {
	CellInfoProvider
	NextMovement(x, y int, view MazeView) Movement
}

// NoInfo can be embedded by finders that have nothing to draw.
type NoInfo struct{}

func (NoInfo) Info(x, y, maxLen int) string {
	return ""
}

// sensorView hands a finder the narrow MazeView of a Maze.
type sensorView struct {
	maze *Maze
}

func (v sensorView) WallInFront() bool { return v.maze.WallInFront() }
func (v sensorView) WallOnLeft() bool { return v.maze.WallOnLeft() }
func (v sensorView) WallOnRight() bool { return v.maze.WallOnRight() }
func (v sensorView) Heading() Direction { return v.maze.Heading() }
func (v sensorView) Size() int { return v.maze.Size() }
