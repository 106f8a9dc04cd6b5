package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionRotations(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.CounterClockwise().Clockwise(), d.String())
		assert.Equal(t, d, d.Clockwise().CounterClockwise(), d.String())
		assert.Equal(t, d, d.Opposite().Opposite(), d.String())
		assert.Equal(t, d.Opposite(), d.Clockwise().Clockwise(), d.String())
	}

	assert.Equal(t, East, North.Clockwise())
	assert.Equal(t, North, West.Clockwise())
	assert.Equal(t, West, North.CounterClockwise())
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, East, West.Opposite())
}

func TestInvalidDirection(t *testing.T) {
	for _, d := range []Direction{Invalid, Direction(-1), Direction(42)} {
		assert.False(t, d.IsValid())
		assert.Equal(t, Invalid, d.Clockwise())
		assert.Equal(t, Invalid, d.CounterClockwise())
		assert.Equal(t, Invalid, d.Opposite())
		assert.Equal(t, "Invalid", d.String())
	}
}
