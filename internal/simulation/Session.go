package simulation

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Mshel/micromouse/internal/finder"
	"github.com/Mshel/micromouse/internal/history"
	"github.com/Mshel/micromouse/internal/layouts"
	"github.com/Mshel/micromouse/internal/maze"
)

// Options describe one run.
type Options struct {
	Layout   string
	Finder   string
	Script   string // lua strategy file, empty for the built-in script
	StartX   int
	StartY   int
	Logger   *log.Logger
	StepHook func(maze.StepEvent)
}

// RunStore keeps finished runs.
type RunStore interface {
	SaveRun(run history.Run) (int, error)
}

// Session is a maze wired to its path finder.
type Session struct {
	Maze       *maze.Maze
	Finder     maze.PathFinder
	LayoutName string
	FinderName string

	logger      *log.Logger
	closeFinder func()
}

// NewSession builds the finder and the maze for opts. A layout name the
// registry does not know runs on the default layout.
func NewSession(registry *layouts.Registry, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	layoutID, ok := registry.ByName(opts.Layout)
	if !ok {
		logger.Warn("Unknown layout, using default", "layout", opts.Layout, "default", registry.Name(maze.DefaultLayoutID))
		layoutID = -1
	}

	pathFinder, closeFinder, err := finder.New(opts.Finder, opts.Script, logger)
	if err != nil {
		return nil, err
	}

	mazeOpts := []maze.Option{
		maze.WithStart(opts.StartX, opts.StartY),
		maze.WithPathFinder(pathFinder),
		maze.WithLogger(logger),
	}
	if opts.StepHook != nil {
		mazeOpts = append(mazeOpts, maze.WithStepHook(opts.StepHook))
	}

	m, err := maze.New(registry, layoutID, mazeOpts...)
	if err != nil {
		closeFinder()
		return nil, fmt.Errorf("failed to build maze %q: %w", opts.Layout, err)
	}

	if !ok {
		layoutID = maze.DefaultLayoutID
	}
	finderName := opts.Finder
	if opts.Script != "" {
		finderName = fmt.Sprintf("%s:%s", opts.Finder, filepath.Base(opts.Script))
	}

	return &Session{
		Maze:        m,
		Finder:      pathFinder,
		LayoutName:  registry.Name(layoutID),
		FinderName:  finderName,
		logger:      logger,
		closeFinder: closeFinder,
	}, nil
}

// Title names the session for display.
func (s *Session) Title() string {
	return fmt.Sprintf("%s / %s", s.LayoutName, s.FinderName)
}

// Record stores result, logging instead of failing when store is nil.
func (s *Session) Record(store RunStore, result maze.RunResult) (int, error) {
	if store == nil {
		s.logger.Debug("No run history, result not stored", "layout", s.LayoutName)
		return 0, nil
	}

	id, err := store.SaveRun(history.NewRun(s.LayoutName, s.FinderName, result))
	if err != nil {
		return 0, err
	}
	s.logger.Info("Run recorded", "id", id, "layout", s.LayoutName, "finder", s.FinderName, "steps", result.Steps)
	return id, nil
}

func (s *Session) Close() {
	s.closeFinder()
}
