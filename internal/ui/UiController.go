package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	PickerScreen Screen = iota
	SimulationScreen
)

// PickerSubmitMsg asks the controller to start a run.
type PickerSubmitMsg struct {
	Layout string
	Finder string
}

// Launcher builds the simulation for the chosen layout and finder.
type Launcher func(layout, finder string) (SimulationModel, error)

// ControllerModel moves a session from the picker to the simulation.
type ControllerModel struct {
	CurrentScreen Screen

	PickerModel     tea.Model
	SimulationModel tea.Model

	launch       Launcher
	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(layouts, finders []string, launch Launcher, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: PickerScreen,
		PickerModel:   NewPickerModel(layouts, finders, screenWidth, screenHeight),
		launch:        launch,
		ScreenWidth:   screenWidth,
		ScreenHeight:  screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.PickerModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case PickerScreen:
		return m.PickerModel.View()
	case SimulationScreen:
		if m.SimulationModel != nil {
			return m.SimulationModel.View()
		}
		return "Loading maze..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height

	case PickerSubmitMsg:
		simulation, err := m.launch(msg.Layout, msg.Finder)
		if err != nil {
			if picker, ok := m.PickerModel.(PickerModel); ok {
				picker.Err = err
				m.PickerModel = picker
			}
			return m, nil
		}

		simulation.ScreenWidth = m.ScreenWidth
		simulation.ScreenHeight = m.ScreenHeight
		simulation.help.Width = m.ScreenWidth
		m.SimulationModel = simulation
		m.CurrentScreen = SimulationScreen
		return m, m.SimulationModel.Init()
	}

	switch m.CurrentScreen {
	case PickerScreen:
		m.PickerModel, cmd = m.PickerModel.Update(msg)
	case SimulationScreen:
		if m.SimulationModel != nil {
			m.SimulationModel, cmd = m.SimulationModel.Update(msg)
		}
	}

	return m, cmd
}
