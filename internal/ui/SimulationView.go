package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Mshel/micromouse/internal/maze"
)

type simulationState int

const (
	stateRunning simulationState = iota
	statePaused
	stateFinished
	stateFailed
)

func (s simulationState) String() string {
	switch s {
	case stateRunning:
		return "running"
	case statePaused:
		return "paused"
	case stateFinished:
		return "finished"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const defaultTickInterval = 120 * time.Millisecond

var (
	mazeViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("172"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mouseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Bold(true)
	crashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

type tickMsg struct {
	id int
}

// SimulationConfig tunes a SimulationModel.
type SimulationConfig struct {
	Title        string                // shown on top of the status panel
	Info         maze.CellInfoProvider // cell annotations, may be nil
	InfoLen      int
	TickInterval time.Duration
	Logger       *log.Logger
	// OnFinish is called once when the path finder finishes the run.
	OnFinish func(maze.RunResult)
}

// SimulationModel steps a maze on a timer and draws it next to a status panel.
type SimulationModel struct {
	maze   *maze.Maze
	config SimulationConfig
	keys   simulationKeys
	help   help.Model

	state        simulationState
	tickID       int
	steps        int
	crashes      int
	lastMovement maze.Movement
	lastErr      error
	result       maze.RunResult

	ScreenWidth  int
	ScreenHeight int
}

func NewSimulationModel(m *maze.Maze, config SimulationConfig) SimulationModel {
	if config.TickInterval <= 0 {
		config.TickInterval = defaultTickInterval
	}
	if config.InfoLen < 0 {
		config.InfoLen = 0
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	return SimulationModel{
		maze:   m,
		config: config,
		keys:   newSimulationKeys(),
		help:   help.New(),
		state:  stateRunning,
	}
}

func (m SimulationModel) Init() tea.Cmd {
	return m.tick()
}

func (m SimulationModel) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.config.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

// Result is the outcome of the run once it has finished or failed.
func (m SimulationModel) Result() (maze.RunResult, bool) {
	return m.result, m.state == stateFinished || m.state == stateFailed
}

func (m SimulationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Pause):
			switch m.state {
			case stateRunning:
				m.state = statePaused
				m.tickID++
			case statePaused:
				m.state = stateRunning
				m.tickID++
				return m, m.tick()
			}

		case key.Matches(msg, m.keys.Step):
			if m.state == statePaused {
				m = m.advance()
			}
		}

	case tickMsg:
		// ticks scheduled before a pause are dropped
		if msg.id != m.tickID || m.state != stateRunning {
			return m, nil
		}
		m = m.advance()
		if m.state == stateRunning {
			return m, m.tick()
		}
	}

	return m, nil
}

// advance applies one movement of the path finder.
func (m SimulationModel) advance() SimulationModel {
	movement, err := m.maze.Step()
	if movement == maze.Finish {
		if err != nil {
			m.lastErr = err
			return m.stop(stateFailed)
		}
		return m.stop(stateFinished)
	}

	m.steps++
	m.lastMovement = movement
	m.lastErr = err
	if err == nil {
		return m
	}

	if errors.Is(err, maze.ErrIllegalMove) {
		m.crashes++
		x, y := m.maze.Position()
		m.config.Logger.Warn("mouse crashed", "x", x, "y", y, "heading", m.maze.Heading(), "movement", movement)
		return m
	}

	m.config.Logger.Error("Simulation stopped", "error", err)
	return m.stop(stateFailed)
}

func (m SimulationModel) stop(state simulationState) SimulationModel {
	x, y := m.maze.Position()
	m.result = maze.RunResult{
		Steps:        m.steps,
		Crashes:      m.crashes,
		FinalX:       x,
		FinalY:       y,
		FinalHeading: m.maze.Heading(),
	}
	m.state = state
	m.tickID++

	if state == stateFinished && m.config.OnFinish != nil {
		m.config.OnFinish(m.result)
	}
	return m
}

func (m SimulationModel) View() string {
	mazeBox := mazeViewStyle.Render(m.renderMaze())
	statusBox := statusPanelStyle.Render(m.renderStatusPanel())

	body := lipgloss.JoinHorizontal(lipgloss.Top, mazeBox, statusBox)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
}

// renderMaze colours the plain text rendering: walls, annotations and the
// cell holding the mouse.
func (m SimulationModel) renderMaze() string {
	plain := m.maze.Render(m.config.Info, m.config.InfoLen)
	cellWidth := m.config.InfoLen + 1
	mouseX, mouseY := m.maze.Position()
	mouseLine := 2*(m.maze.Size()-1-mouseY) + 1

	cellStyle := mouseStyle
	if errors.Is(m.lastErr, maze.ErrIllegalMove) {
		cellStyle = crashStyle
	}

	var out strings.Builder
	for i, line := range strings.Split(plain, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		// even lines only hold wall segments
		if i%2 == 0 {
			out.WriteString(wallStyle.Render(line))
			continue
		}

		runes := []rune(line)
		for pos := 0; pos < len(runes); {
			if pos%(cellWidth+1) == 0 {
				out.WriteString(wallStyle.Render(string(runes[pos])))
				pos++
				continue
			}

			end := min(pos+cellWidth, len(runes))
			style := infoStyle
			if i == mouseLine && pos/(cellWidth+1) == mouseX {
				style = cellStyle
			}
			out.WriteString(style.Render(string(runes[pos:end])))
			pos = end
		}
	}
	return out.String()
}

func (m SimulationModel) renderStatusPanel() string {
	var status strings.Builder
	x, y := m.maze.Position()

	if m.config.Title != "" {
		status.WriteString(headerStyle.Render(m.config.Title) + "\n\n")
	}
	status.WriteString(headerStyle.Render("--- Mouse ---") + "\n")
	status.WriteString(fmt.Sprintf("State: %s\n", m.state))
	status.WriteString(fmt.Sprintf("Steps: %d\n", m.steps))
	status.WriteString(fmt.Sprintf("Crashes: %d\n", m.crashes))
	status.WriteString(fmt.Sprintf("Position: (%d, %d)\n", x, y))
	status.WriteString(fmt.Sprintf("Heading: %s %s\n", m.maze.Heading(), maze.HeadingGlyph(m.maze.Heading())))

	if m.steps > 0 {
		last := m.lastMovement.String()
		if errors.Is(m.lastErr, maze.ErrIllegalMove) {
			last = crashStyle.Render(last + " (crashed)")
		}
		status.WriteString(fmt.Sprintf("Last: %s\n", last))
	}

	switch m.state {
	case stateFinished:
		status.WriteString("\n" + RenderRunSummary(m.result))
	case stateFailed:
		status.WriteString("\n" + crashStyle.Render(fmt.Sprintf("Stopped: %v", m.lastErr)) + "\n")
	case statePaused:
		status.WriteString("\n" + faintStyle.Render("Paused, n steps once") + "\n")
	}

	return status.String()
}
