package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Movement is what a PathFinder asks the mouse to do next.
type Movement int

const (
	MoveForward Movement = iota
	MoveBackward
	TurnClockwise
	TurnCounterClockwise
	TurnAround
	// Wait changes nothing; it lets a finder think across several calls.
	Wait
	// Finish ends the run loop.
	Finish
)

var ErrUnknownMovement = errors.New("unknown movement")

var movementNames = map[Movement]string{
	MoveForward:          "forward",
	MoveBackward:         "backward",
	TurnClockwise:        "cw",
	TurnCounterClockwise: "ccw",
	TurnAround:           "around",
	Wait:                 "wait",
	Finish:               "finish",
}

func (m Movement) String() string {
	if name, ok := movementNames[m]; ok {
		return name
	}
	return fmt.Sprintf("movement(%d)", int(m))
}

// ParseMovement is the inverse of String. A few long aliases are accepted too.
func ParseMovement(s string) (Movement, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "clockwise", "right":
		return TurnClockwise, nil
	case "counterclockwise", "counter_clockwise", "left":
		return TurnCounterClockwise, nil
	}

	for movement, movementName := range movementNames {
		if movementName == name {
			return movement, nil
		}
	}
	return Finish, fmt.Errorf("%w: %q", ErrUnknownMovement, s)
}
