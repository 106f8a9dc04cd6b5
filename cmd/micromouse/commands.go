package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Mshel/micromouse/internal/config"
	"github.com/Mshel/micromouse/internal/history"
	"github.com/Mshel/micromouse/internal/layouts"
	"github.com/Mshel/micromouse/internal/maze"
	"github.com/Mshel/micromouse/internal/simulation"
	"github.com/Mshel/micromouse/internal/ui"
)

// RunCmd runs a path finder until it finishes.
type RunCmd struct {
	Layout    string        `short:"l" help:"Layout name." default:"${layout}"`
	Finder    string        `short:"f" help:"Path finder (${finders})." default:"${finder}"`
	Script    string        `help:"Lua strategy file for the lua finder." default:"${script}"`
	StartX    int           `name:"start-x" help:"Start column." default:"0"`
	StartY    int           `name:"start-y" help:"Start row." default:"0"`
	InfoLen   int           `name:"info-len" help:"Annotation characters per cell." default:"${info_len}"`
	Tick      time.Duration `help:"Delay between steps in the viewer." default:"${tick}"`
	TUI       bool          `name:"tui" help:"Watch the run in the terminal viewer."`
	Trace     bool          `help:"Print the maze after every step."`
	NoHistory bool          `name:"no-history" help:"Do not record the run."`
}

func (c *RunCmd) Run(cfg *config.Config, registry *layouts.Registry) error {
	logger := log.Default()
	if c.TUI {
		// the viewer owns the terminal
		logger = log.New(io.Discard)
	}

	var store simulation.RunStore
	if !c.NoHistory {
		historyService, err := history.NewRunHistoryService(cfg.DBPath)
		if err != nil {
			return err
		}
		defer historyService.Close()
		store = historyService
	}

	opts := simulation.Options{
		Layout: c.Layout,
		Finder: c.Finder,
		Script: c.Script,
		StartX: c.StartX,
		StartY: c.StartY,
		Logger: logger,
	}

	var session *simulation.Session
	if c.Trace && !c.TUI {
		opts.StepHook = func(e maze.StepEvent) {
			fmt.Printf("step %d: %s\n%s\n\n", e.Step, e.Movement, session.Maze.Render(session.Finder, c.InfoLen))
		}
	}

	session, err := simulation.NewSession(registry, opts)
	if err != nil {
		return err
	}
	defer session.Close()

	if c.TUI {
		return c.watch(session, store)
	}

	if c.Trace {
		fmt.Printf("start\n%s\n\n", session.Maze.Render(session.Finder, c.InfoLen))
	}

	result, err := session.Maze.Run()
	if err != nil {
		return fmt.Errorf("run on %s stopped: %w", session.LayoutName, err)
	}

	fmt.Print(ui.RenderRunSummary(result))
	_, err = session.Record(store, result)
	return err
}

// watch runs the session inside the bubbletea viewer.
func (c *RunCmd) watch(session *simulation.Session, store simulation.RunStore) error {
	var recordErr error
	model := ui.NewSimulationModel(session.Maze, ui.SimulationConfig{
		Title:        session.Title(),
		Info:         session.Finder,
		InfoLen:      c.InfoLen,
		TickInterval: c.Tick,
		Logger:       log.New(io.Discard),
		OnFinish: func(result maze.RunResult) {
			_, recordErr = session.Record(store, result)
		},
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}

	if simulationModel, ok := final.(ui.SimulationModel); ok {
		if result, done := simulationModel.Result(); done {
			fmt.Print(ui.RenderRunSummary(result))
		}
	}
	return recordErr
}

// RenderCmd prints a layout with the mouse at the origin.
type RenderCmd struct {
	Layout  string `arg:"" optional:"" help:"Layout name." default:"${layout}"`
	InfoLen int    `name:"info-len" help:"Annotation characters per cell." default:"${info_len}"`
}

func (c *RenderCmd) Run(registry *layouts.Registry) error {
	id, ok := registry.ByName(c.Layout)
	if !ok {
		log.Warn("Unknown layout, rendering default", "layout", c.Layout, "default", registry.Name(maze.DefaultLayoutID))
		id = -1
	}

	m, err := maze.New(registry, id)
	if err != nil {
		return err
	}
	fmt.Println(m.Render(nil, c.InfoLen))
	return nil
}

// LayoutsCmd lists the registered layouts.
type LayoutsCmd struct{}

func (c *LayoutsCmd) Run(registry *layouts.Registry) error {
	fmt.Println(ui.RenderLayoutList(registry.Names()))
	return nil
}

// HistoryCmd prints the most recent runs.
type HistoryCmd struct {
	Limit  int `help:"Runs per page." default:"20"`
	Offset int `help:"Runs to skip." default:"0"`
}

func (c *HistoryCmd) Run(cfg *config.Config) error {
	historyService, err := history.NewRunHistoryService(cfg.DBPath)
	if err != nil {
		return err
	}
	defer historyService.Close()

	total, err := historyService.GetTotalRunCount()
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	runs, err := historyService.GetRuns(c.Limit, c.Offset)
	if err != nil {
		return err
	}
	fmt.Println(ui.RenderRunTable(runs))
	fmt.Printf("Showing %d of %d runs\n", len(runs), total)
	return nil
}
