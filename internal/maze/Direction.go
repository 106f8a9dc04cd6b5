package maze

// Direction is the mouse heading, or the side of a cell a wall query is about.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	Invalid
)

// Directions lists the four valid headings in clockwise order starting at North.
var Directions = []Direction{North, East, South, West}

func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Clockwise rotates the heading by 90 degrees to the right.
func (d Direction) Clockwise() Direction {
	if !d.IsValid() {
		return Invalid
	}
	return (d + 1) % 4
}

// CounterClockwise rotates the heading by 90 degrees to the left.
func (d Direction) CounterClockwise() Direction {
	if !d.IsValid() {
		return Invalid
	}
	return (d + 3) % 4
}

func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return Invalid
	}
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Invalid"
	}
}

// delta is the change of (x, y) when stepping one cell towards d. y grows northwards.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
