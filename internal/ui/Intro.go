package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	pickerRowLayout = iota
	pickerRowFinder
	pickerRowCount
)

// PickerModel lets a viewer choose a layout and a path finder before a run.
type PickerModel struct {
	layouts     []string
	finders     []string
	layoutIndex int
	finderIndex int
	row         int

	keys pickerKeys
	help help.Model

	Err    error
	width  int
	height int
}

func NewPickerModel(layouts, finders []string, w, h int) PickerModel {
	return PickerModel{
		layouts: layouts,
		finders: finders,
		keys:    newPickerKeys(),
		help:    help.New(),
		width:   w,
		height:  h,
	}
}

func (m PickerModel) Init() tea.Cmd { return nil }

// Selection returns the highlighted layout and finder names.
func (m PickerModel) Selection() (layout, finder string) {
	if len(m.layouts) > 0 {
		layout = m.layouts[m.layoutIndex]
	}
	if len(m.finders) > 0 {
		finder = m.finders[m.finderIndex]
	}
	return layout, finder
}

func cycle(index, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((index+delta)%n + n) % n
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.row = cycle(m.row, -1, pickerRowCount)
		case key.Matches(msg, m.keys.Down):
			m.row = cycle(m.row, 1, pickerRowCount)
		case key.Matches(msg, m.keys.Left):
			m = m.change(-1)
		case key.Matches(msg, m.keys.Right):
			m = m.change(1)
		case key.Matches(msg, m.keys.Start):
			layout, finder := m.Selection()
			return m, func() tea.Msg { return PickerSubmitMsg{Layout: layout, Finder: finder} }
		}
	}
	return m, nil
}

func (m PickerModel) change(delta int) PickerModel {
	if m.row == pickerRowLayout {
		m.layoutIndex = cycle(m.layoutIndex, delta, len(m.layouts))
	} else {
		m.finderIndex = cycle(m.finderIndex, delta, len(m.finders))
	}
	return m
}

var mouseAscii = `
     (\   /)
     ( o.o )___________
      \   /            \~~~~~~~~
       \_/_____________/
   M I C R O M O U S E
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	pickerLabelStyle = lipgloss.NewStyle().
				Width(10).
				Bold(true)

	pickerOptionStyle = lipgloss.NewStyle().
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	pickerSelectedOptionStyle = pickerOptionStyle.
					Background(lipgloss.Color("87")).
					Foreground(lipgloss.Color("0"))

	pickerErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9"))
)

func (m PickerModel) View() string {
	var sb strings.Builder
	sb.WriteString(asciiStyle.Render(mouseAscii))
	sb.WriteString("\n")

	layout, finder := m.Selection()
	rows := []string{
		m.renderRow(pickerRowLayout, "Layout", layout),
		m.renderRow(pickerRowFinder, "Finder", finder),
	}

	parts := []string{sb.String()}
	parts = append(parts, rows...)
	if m.Err != nil {
		parts = append(parts, pickerErrorStyle.Render(m.Err.Error()))
	}
	parts = append(parts, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

func (m PickerModel) renderRow(row int, label, value string) string {
	option := pickerOptionStyle.Render("‹ " + value + " ›")
	if m.row == row {
		option = pickerSelectedOptionStyle.Render("‹ " + value + " ›")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, pickerLabelStyle.Render(label), option)
}
