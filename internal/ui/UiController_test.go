package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mshel/micromouse/internal/history"
	"github.com/Mshel/micromouse/internal/maze"
)

var (
	testLayouts = []string{"wilson", "open", "serpentine"}
	testFinders = []string{"left-wall", "lua"}
)

func TestPickerCyclesRows(t *testing.T) {
	var model tea.Model = NewPickerModel(testLayouts, testFinders, 0, 0)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	layout, finder := model.(PickerModel).Selection()
	assert.Equal(t, "serpentine", layout, "wraps around")
	assert.Equal(t, "left-wall", finder)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
	layout, finder = model.(PickerModel).Selection()
	assert.Equal(t, "serpentine", layout)
	assert.Equal(t, "lua", finder)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, PickerSubmitMsg{Layout: "serpentine", Finder: "lua"}, cmd())

	assert.Contains(t, model.View(), "serpentine")
}

func TestControllerStartsSimulation(t *testing.T) {
	var launched []PickerSubmitMsg
	launch := func(layout, finder string) (SimulationModel, error) {
		launched = append(launched, PickerSubmitMsg{Layout: layout, Finder: finder})
		return newTestSimulation(t, &scriptedFinder{}, nil), nil
	}

	controller := NewControllerModel(testLayouts, testFinders, launch, 120, 40)
	assert.Equal(t, PickerScreen, controller.CurrentScreen)

	model, cmd := controller.Update(PickerSubmitMsg{Layout: "open", Finder: "left-wall"})
	assert.NotNil(t, cmd)
	controller = model.(ControllerModel)

	assert.Equal(t, SimulationScreen, controller.CurrentScreen)
	assert.Equal(t, []PickerSubmitMsg{{Layout: "open", Finder: "left-wall"}}, launched)
	assert.Contains(t, controller.View(), "Steps: 0")
}

func TestControllerShowsLaunchErrors(t *testing.T) {
	launch := func(layout, finder string) (SimulationModel, error) {
		return SimulationModel{}, errors.New("lua script does not define next_movement")
	}

	controller := NewControllerModel(testLayouts, testFinders, launch, 0, 0)
	model, cmd := controller.Update(PickerSubmitMsg{Layout: "open", Finder: "lua"})
	assert.Nil(t, cmd)
	controller = model.(ControllerModel)

	assert.Equal(t, PickerScreen, controller.CurrentScreen)
	assert.Contains(t, controller.View(), "does not define next_movement")
}

func TestRenderRunTable(t *testing.T) {
	runs := []history.Run{
		{ID: 2, Layout: "open", Finder: "lua", Steps: 64, Heading: "South", CreatedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{ID: 1, Layout: "wilson", Finder: "left-wall", Steps: 311, Crashes: 2, FinalX: 7, FinalY: 8, Heading: "East"},
	}

	out := RenderRunTable(runs)
	for _, want := range []string{"Layout", "Crashes", "open", "wilson", "311", "(7, 8) East", "2024-05-01 10:30"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderLayoutListAndSummary(t *testing.T) {
	out := RenderLayoutList(testLayouts)
	assert.Contains(t, out, "serpentine")
	assert.Contains(t, out, "ID")

	summary := RenderRunSummary(maze.RunResult{Steps: 9, Crashes: 1, FinalX: 3, FinalY: 2, FinalHeading: maze.West})
	assert.Contains(t, summary, "Steps: 9")
	assert.Contains(t, summary, "(3, 2) facing West")
}
