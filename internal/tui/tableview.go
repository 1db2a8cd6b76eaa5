package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) initTable() {
	t := table.New(
		table.WithColumns(a.tableColumns(60)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(lipgloss.Color("252")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62")).
		Bold(false)
	t.SetStyles(s)

	a.table = t
	a.refreshTable()
}

func (a *App) tableColumns(nameWidth int) []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Value", Width: 5},
		{Title: "Time", Width: 5},
		{Title: "Task", Width: nameWidth},
		{Title: "Scheduled", Width: 17},
	}
}

func (a *App) sizeTableColumns() {
	const fixed = 4 + 6 + 5 + 5 + 17 + 12 // other columns plus cell padding
	nameW := maxInt(10, a.width-fixed)
	a.table.SetColumns(a.tableColumns(nameW))
}

// refreshTable rebuilds the rows from the current ranking.
func (a *App) refreshTable() {
	ranked := a.tasks.Ranked()
	rows := make([]table.Row, len(ranked))
	for i, t := range ranked {
		sched := ""
		if t.IsScheduled() {
			sched = t.ScheduledDate.String()
			if t.StartTime != nil && t.EndTime != nil {
				sched += " " + t.StartTime.String()
			}
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f", t.Score()),
			fmt.Sprintf("%.1f", t.Value),
			fmt.Sprintf("%.1f", t.Hours),
			t.Name,
			sched,
		}
	}
	a.table.SetRows(rows)
}

func (a *App) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return a, tea.Quit
	case "?":
		a.view = viewHelp
		return a, nil
	case "e":
		a.openExportDialog()
		return a, nil
	case "d":
		if name := a.tableSelection(); name != "" {
			a.deleteName = name
			a.view = viewConfirmDelete
		}
		return a, nil
	case "C":
		if a.tasks.Len() > 0 {
			a.view = viewConfirmClear
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	return a, cmd
}

// tableSelection returns the task name on the highlighted row.
func (a *App) tableSelection() string {
	row := a.table.SelectedRow()
	if row == nil || len(row) < 5 {
		return ""
	}
	return row[4]
}

func (a *App) viewTable() string {
	if a.tasks.Len() == 0 {
		return a.fitBody(dimStyle.Render("\n  No tasks yet."))
	}
	return a.fitBody(a.table.View())
}
