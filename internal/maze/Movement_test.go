package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovement(t *testing.T) {
	cases := map[string]Movement{
		"forward":   MoveForward,
		" Backward": MoveBackward,
		"cw":        TurnClockwise,
		"right":     TurnClockwise,
		"CCW":       TurnCounterClockwise,
		"left":      TurnCounterClockwise,
		"around":    TurnAround,
		"wait":      Wait,
		"finish":    Finish,
	}
	for input, want := range cases {
		got, err := ParseMovement(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseMovement("jump")
	assert.ErrorIs(t, err, ErrUnknownMovement)
}

func TestMovementString(t *testing.T) {
	assert.Equal(t, "around", TurnAround.String())
	assert.Equal(t, "movement(99)", Movement(99).String())
}
