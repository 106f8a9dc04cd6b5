package simulation

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mshel/micromouse/internal/finder"
	"github.com/Mshel/micromouse/internal/history"
	"github.com/Mshel/micromouse/internal/layouts"
	"github.com/Mshel/micromouse/internal/maze"
)

func quietOptions(layout, finderName string) Options {
	return Options{Layout: layout, Finder: finderName, Logger: log.New(io.Discard)}
}

type memoryStore struct {
	runs []history.Run
	err  error
}

func (s *memoryStore) SaveRun(run history.Run) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.runs = append(s.runs, run)
	return len(s.runs), nil
}

func TestSessionRunsAndRecords(t *testing.T) {
	session, err := NewSession(layouts.NewRegistry(), quietOptions("open", finder.NameLeftWall))
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, "open / left-wall", session.Title())

	result, err := session.Maze.Run()
	require.NoError(t, err)
	assert.Equal(t, 63, result.Steps)

	store := &memoryStore{}
	id, err := session.Record(store, result)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	require.Len(t, store.runs, 1)
	assert.Equal(t, history.NewRun("open", "left-wall", result), store.runs[0])
}

func TestUnknownLayoutFallsBackToDefault(t *testing.T) {
	session, err := NewSession(layouts.NewRegistry(), quietOptions("labyrinth", finder.NameLua))
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, "wilson", session.LayoutName)
	assert.Equal(t, layouts.DefaultSize, session.Maze.Size())
}

func TestSessionErrors(t *testing.T) {
	registry := layouts.NewRegistry()

	_, err := NewSession(registry, quietOptions("open", "dijkstra"))
	assert.ErrorIs(t, err, finder.ErrUnknownFinder)

	opts := quietOptions("open", finder.NameLeftWall)
	opts.StartX = layouts.DefaultSize
	_, err = NewSession(registry, opts)
	assert.ErrorIs(t, err, maze.ErrStartOutOfBounds)
}

func TestScriptNameIsRecorded(t *testing.T) {
	opts := quietOptions("open", finder.NameLua)
	opts.Script = filepath.Join("..", "..", "strategies", "explorer.lua")

	session, err := NewSession(layouts.NewRegistry(), opts)
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, "lua:explorer.lua", session.FinderName)
}

func TestRecordWithoutStore(t *testing.T) {
	session, err := NewSession(layouts.NewRegistry(), quietOptions("open", finder.NameLeftWall))
	require.NoError(t, err)
	defer session.Close()

	id, err := session.Record(nil, maze.RunResult{})
	assert.NoError(t, err)
	assert.Zero(t, id)

	_, err = session.Record(&memoryStore{err: errors.New("disk full")}, maze.RunResult{})
	assert.EqualError(t, err, "disk full")
}

func TestStepHookSeesEveryMove(t *testing.T) {
	steps := 0
	opts := quietOptions("serpentine", finder.NameLeftWall)
	opts.StepHook = func(maze.StepEvent) { steps++ }

	session, err := NewSession(layouts.NewRegistry(), opts)
	require.NoError(t, err)
	defer session.Close()

	result, err := session.Maze.Run()
	require.NoError(t, err)
	assert.Equal(t, result.Steps, steps)
}
