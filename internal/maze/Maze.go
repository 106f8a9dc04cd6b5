package maze

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

var (
	// ErrIllegalMove means the mouse was told to drive through a wall.
	ErrIllegalMove      = errors.New("mouse crashed into a wall")
	ErrMalformedLayout  = errors.New("layout is not a square matrix")
	ErrStartOutOfBounds = errors.New("start cell outside the maze")
	ErrNoPathFinder     = errors.New("maze has no path finder")
)

// StepEvent describes one movement applied by the run loop.
type StepEvent struct {
	Step     int
	Movement Movement
	X, Y     int
	Heading  Direction
	Err      error
}

// RunResult summarises a finished run.
type RunResult struct {
	Steps        int
	Crashes      int
	FinalX       int
	FinalY       int
	FinalHeading Direction
}

type Maze struct {
	size int

	// wallNS holds the boundaries between rows: (x, y) is the south side of cell (x, y).
	wallNS *WallGrid
	// wallEW holds the boundaries between columns: (x, y) is the west side of cell (x, y).
	wallEW *WallGrid

	mouseX  int
	mouseY  int
	heading Direction

	finder   PathFinder
	logger   *log.Logger
	stepHook func(StepEvent)
	steps    int
}

type Option func(*Maze)

// WithStart places the mouse somewhere other than the origin.
func WithStart(x, y int) Option {
	return func(m *Maze) {
		m.mouseX = x
		m.mouseY = y
	}
}

func WithPathFinder(finder PathFinder) Option {
	return func(m *Maze) {
		m.finder = finder
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(m *Maze) {
		m.logger = logger
	}
}

// WithStepHook registers a function called after every movement the run loop applies.
func WithStepHook(hook func(StepEvent)) Option {
	return func(m *Maze) {
		m.stepHook = hook
	}
}

// New decodes layout id from source. An id the source does not know falls
// back to DefaultLayoutID. The mouse starts at the origin heading North unless
// WithStart says otherwise.
func New(source LayoutSource, id LayoutID, opts ...Option) (*Maze, error) {
	m := &Maze{
		heading: North,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if id < 0 || int(id) >= source.Len() {
		m.logger.Debug("unknown layout, using default", "layout", int(id), "default", int(DefaultLayoutID))
		id = DefaultLayoutID
	}

	layout := source.Layout(id)
	size, ok := layout.size()
	if !ok {
		return nil, fmt.Errorf("%w: layout %d", ErrMalformedLayout, id)
	}

	if m.mouseX < 0 || m.mouseY < 0 || m.mouseX >= size || m.mouseY >= size {
		return nil, fmt.Errorf("%w: (%d,%d) in a %dx%d maze", ErrStartOutOfBounds, m.mouseX, m.mouseY, size, size)
	}

	var err error
	if m.wallNS, err = NewWallGrid(size); err != nil {
		return nil, err
	}
	if m.wallEW, err = NewWallGrid(size); err != nil {
		return nil, err
	}
	m.size = size
	m.decode(layout)

	return m, nil
}

func (m *Maze) decode(layout Layout) {
	m.wallNS.ClearAll()
	m.wallEW.ClearAll()

	last := m.size - 1
	for col := 0; col < m.size; col++ {
		for row := 0; row < m.size; row++ {
			cell := layout[col][row]

			// outer boundaries stay closed whatever the byte says
			if cell&WallNorth == 0 && row != last {
				m.setOpen(col, row, North)
			}
			if cell&WallSouth == 0 && row != 0 {
				m.setOpen(col, row, South)
			}
			if cell&WallWest == 0 && col != 0 {
				m.setOpen(col, row, West)
			}
			if cell&WallEast == 0 && col != last {
				m.setOpen(col, row, East)
			}
		}
	}
}

func (m *Maze) setOpen(x, y int, d Direction) {
	switch d {
	case North:
		m.wallNS.Set(x, y+1)
	case South:
		m.wallNS.Set(x, y)
	case East:
		m.wallEW.Set(x+1, y)
	case West:
		m.wallEW.Set(x, y)
	}
}

// IsOpen reports whether side d of cell (x, y) can be driven through.
func (m *Maze) IsOpen(x, y int, d Direction) bool {
	switch d {
	case North:
		return m.wallNS.Get(x, y+1)
	case South:
		return m.wallNS.Get(x, y)
	case East:
		return m.wallEW.Get(x+1, y)
	case West:
		return m.wallEW.Get(x, y)
	default:
		return false
	}
}

func (m *Maze) Size() int {
	return m.size
}

func (m *Maze) Position() (x, y int) {
	return m.mouseX, m.mouseY
}

func (m *Maze) Heading() Direction {
	return m.heading
}

func (m *Maze) WallInFront() bool {
	return !m.IsOpen(m.mouseX, m.mouseY, m.heading)
}

func (m *Maze) WallOnLeft() bool {
	return !m.IsOpen(m.mouseX, m.mouseY, m.heading.CounterClockwise())
}

func (m *Maze) WallOnRight() bool {
	return !m.IsOpen(m.mouseX, m.mouseY, m.heading.Clockwise())
}

func (m *Maze) TurnClockwise() {
	m.heading = m.heading.Clockwise()
}

func (m *Maze) TurnCounterClockwise() {
	m.heading = m.heading.CounterClockwise()
}

func (m *Maze) TurnAround() {
	m.heading = m.heading.Opposite()
}

// MoveForward advances one cell. Driving into a wall returns an error
// wrapping ErrIllegalMove and leaves the mouse where it was.
func (m *Maze) MoveForward() error {
	if !m.IsOpen(m.mouseX, m.mouseY, m.heading) {
		return fmt.Errorf("%w: at (%d,%d) heading %s", ErrIllegalMove, m.mouseX, m.mouseY, m.heading)
	}

	dx, dy := m.heading.delta()
	m.mouseX += dx
	m.mouseY += dy
	return nil
}

// MoveBackward reverses one cell without changing the heading, also when the
// move fails.
func (m *Maze) MoveBackward() error {
	oldHeading := m.heading
	m.heading = oldHeading.Opposite()
	err := m.MoveForward()
	m.heading = oldHeading
	return err
}

// Apply performs a single movement. Wait and Finish change nothing.
func (m *Maze) Apply(movement Movement) error {
	switch movement {
	case MoveForward:
		return m.MoveForward()
	case MoveBackward:
		return m.MoveBackward()
	case TurnClockwise:
		m.TurnClockwise()
	case TurnCounterClockwise:
		m.TurnCounterClockwise()
	case TurnAround:
		m.TurnAround()
	case Wait, Finish:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMovement, int(movement))
	}
	return nil
}

// Step asks the path finder for one movement and applies it. Finish is
// returned without touching the maze. Errors from the movement, including
// ErrIllegalMove, are returned as is.
func (m *Maze) Step() (Movement, error) {
	if m.finder == nil {
		return Finish, ErrNoPathFinder
	}

	movement := m.finder.NextMovement(m.mouseX, m.mouseY, sensorView{maze: m})
	if movement == Finish {
		return Finish, nil
	}

	err := m.Apply(movement)
	m.steps++
	if m.stepHook != nil {
		m.stepHook(StepEvent{
			Step:     m.steps,
			Movement: movement,
			X:        m.mouseX,
			Y:        m.mouseY,
			Heading:  m.heading,
			Err:      err,
		})
	}
	return movement, err
}

// Run steps the maze until the path finder returns Finish. A crash is logged
// and counted and the run goes on; the finder is expected never to ask for
// one. There is no step limit.
func (m *Maze) Run() (RunResult, error) {
	if m.finder == nil {
		return RunResult{}, ErrNoPathFinder
	}

	result := RunResult{}
	for {
		movement, err := m.Step()
		if movement == Finish && err == nil {
			break
		}
		result.Steps++

		if err != nil {
			if !errors.Is(err, ErrIllegalMove) {
				return m.finish(result), err
			}
			result.Crashes++
			m.logger.Warn("mouse crashed", "x", m.mouseX, "y", m.mouseY, "heading", m.heading, "movement", movement)
		}
	}

	return m.finish(result), nil
}

func (m *Maze) finish(result RunResult) RunResult {
	result.FinalX = m.mouseX
	result.FinalY = m.mouseY
	result.FinalHeading = m.heading
	m.logger.Debug("run finished", "steps", result.Steps, "crashes", result.Crashes)
	return result
}
