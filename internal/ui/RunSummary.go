package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Mshel/micromouse/internal/history"
	"github.com/Mshel/micromouse/internal/maze"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	historyHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	historyRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	historyCrashRowStyle = historyRowStyle.
				Foreground(lipgloss.Color("9"))
)

// RenderRunSummary describes a finished run in a few lines.
func RenderRunSummary(result maze.RunResult) string {
	title := summaryTitleStyle.Render("Run finished")
	return fmt.Sprintf("%s\nSteps: %d\nCrashes: %d\nFinal cell: (%d, %d) facing %s\n",
		title, result.Steps, result.Crashes, result.FinalX, result.FinalY, result.FinalHeading)
}

// RenderRunTable draws stored runs as a table, rows with crashes in red.
func RenderRunTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.Itoa(run.ID),
			run.Layout,
			run.Finder,
			strconv.Itoa(run.Steps),
			strconv.Itoa(run.Crashes),
			fmt.Sprintf("(%d, %d) %s", run.FinalX, run.FinalY, run.Heading),
			run.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("#", "Layout", "Finder", "Steps", "Crashes", "Final", "When").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return historyHeaderStyle
			}
			if row >= 0 && row < len(runs) && runs[row].Crashes > 0 {
				return historyCrashRowStyle
			}
			return historyRowStyle
		})

	return t.Render()
}

// RenderLayoutList prints the layout names with their ids.
func RenderLayoutList(names []string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("ID", "Layout").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return historyHeaderStyle
			}
			return historyRowStyle
		})
	for id, name := range names {
		t.Row(strconv.Itoa(id), name)
	}
	return t.Render()
}
