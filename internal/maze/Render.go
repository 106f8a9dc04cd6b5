package maze

import (
	"strings"
)

// DefaultInfoLen is how many annotation characters fit in a cell by default.
const DefaultInfoLen = 5

const (
	gridPoint     = "*"
	vertWall      = "|"
	vertWallEmpty = " "
	horizWallRune = "-"
)

var headingGlyphs = map[Direction]string{
	North: "^",
	East:  ">",
	South: "V",
	West:  "<",
}

// HeadingGlyph is the character the mouse is drawn with for heading d.
func HeadingGlyph(d Direction) string {
	return headingGlyphs[d]
}

// Render draws the maze as text, northernmost row first. Each cell is
// infoLen+1 characters wide; info (may be nil) fills cells with up to infoLen
// characters and the mouse is drawn as an arrow after them.
func (m *Maze) Render(info CellInfoProvider, infoLen int) string {
	if infoLen < 0 {
		infoLen = 0
	}

	cellWidth := infoLen + 1
	horizWall := strings.Repeat(horizWallRune, cellWidth)
	horizWallEmpty := strings.Repeat(" ", cellWidth)

	var out strings.Builder
	for y := m.size - 1; y >= 0; y-- {
		var upDown, leftRight strings.Builder
		upDown.WriteString(gridPoint)

		for x := 0; x < m.size; x++ {
			if m.IsOpen(x, y, North) {
				upDown.WriteString(horizWallEmpty)
			} else {
				upDown.WriteString(horizWall)
			}
			upDown.WriteString(gridPoint)

			if m.IsOpen(x, y, West) {
				leftRight.WriteString(vertWallEmpty)
			} else {
				leftRight.WriteString(vertWall)
			}
			leftRight.WriteString(m.cellContent(x, y, info, infoLen))
		}

		if m.IsOpen(m.size-1, y, East) {
			leftRight.WriteString(vertWallEmpty)
		} else {
			leftRight.WriteString(vertWall)
		}

		out.WriteString(upDown.String())
		out.WriteByte('\n')
		out.WriteString(leftRight.String())
		out.WriteByte('\n')
	}

	out.WriteString(gridPoint)
	for x := 0; x < m.size; x++ {
		if m.IsOpen(x, 0, South) {
			out.WriteString(horizWallEmpty)
		} else {
			out.WriteString(horizWall)
		}
		out.WriteString(gridPoint)
	}

	return out.String()
}

func (m *Maze) cellContent(x, y int, info CellInfoProvider, infoLen int) string {
	cellWidth := infoLen + 1

	var content []rune
	if info != nil {
		content = []rune(info.Info(x, y, infoLen))
		if len(content) > infoLen {
			content = content[:infoLen]
		}
	}
	if len(content) == 0 {
		content = []rune(strings.Repeat(" ", cellWidth/2))
	}

	if x == m.mouseX && y == m.mouseY {
		content = append(content, []rune(HeadingGlyph(m.heading))...)
	}

	if len(content) < cellWidth {
		content = append(content, []rune(strings.Repeat(" ", cellWidth-len(content)))...)
	}
	return string(content)
}

// String renders the maze with the path finder's annotations, if any.
func (m *Maze) String() string {
	var info CellInfoProvider
	if m.finder != nil {
		info = m.finder
	}
	return m.Render(info, DefaultInfoLen)
}
