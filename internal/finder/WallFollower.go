package finder

import (
	"strconv"

	"github.com/Mshel/micromouse/internal/maze"
)

// WallFollower keeps its left hand on the wall. It stops once it reaches the
// centre of the maze, or when it comes back to the origin after leaving it,
// as the centre is then not reachable along the left wall.
//
// Wall following is easy to defeat; competition mazes are built so that it
// never reaches the centre. It is here as a reference finder.
type WallFollower struct {
	// set after turning left into an opening so the next move takes it
	shouldGoForward bool
	leftStart       bool
	visits          map[[2]int]int
}

func NewWallFollower() *WallFollower {
	return &WallFollower{visits: make(map[[2]int]int)}
}

func isAtCenter(x, y, size int) bool {
	mid := size / 2
	if size%2 != 0 {
		return x == mid && y == mid
	}
	return (x == mid || x == mid-1) && (y == mid || y == mid-1)
}

func (f *WallFollower) NextMovement(x, y int, view maze.MazeView) maze.Movement {
	if f.visits == nil {
		f.visits = make(map[[2]int]int)
	}
	f.visits[[2]int{x, y}]++

	frontWall := view.WallInFront()
	leftWall := view.WallOnLeft()

	if isAtCenter(x, y, view.Size()) {
		return maze.Finish
	}

	if x == 0 && y == 0 {
		if f.leftStart {
			return maze.Finish
		}
	} else {
		f.leftStart = true
	}

	switch {
	case !frontWall && f.shouldGoForward:
		f.shouldGoForward = false
		return maze.MoveForward
	case !frontWall && leftWall:
		f.shouldGoForward = false
		return maze.MoveForward
	case frontWall && leftWall:
		f.shouldGoForward = false
		return maze.TurnClockwise
	case !leftWall:
		f.shouldGoForward = true
		return maze.TurnCounterClockwise
	}
	return maze.Finish
}

// Info shows how many decisions were made in each cell.
func (f *WallFollower) Info(x, y, maxLen int) string {
	count := f.visits[[2]int{x, y}]
	if count == 0 {
		return ""
	}
	return strconv.Itoa(count)
}
