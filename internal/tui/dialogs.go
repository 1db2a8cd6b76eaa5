package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/export"
	"github.com/priplot/priplot/internal/task"
)

// --- Schedule dialog ---

// openScheduleDialog starts scheduling the selected task on the
// selected calendar day, with proposed times prefilled.
func (a *App) openScheduleDialog() {
	t := a.selectedTask()
	if t == nil {
		return
	}
	a.schedTask = t.Name
	a.schedDate = a.calDay

	start, end := a.sched.DefaultTimes(a.calDay)
	if t.IsScheduled() && t.ScheduledDate.Equal(a.calDay) && t.StartTime != nil && t.EndTime != nil {
		start, end = *t.StartTime, *t.EndTime
	}

	a.timeInputs = make([]textinput.Model, 2)
	for i, v := range []string{start.String(), end.String()} {
		ti := textinput.New()
		ti.CharLimit = 5
		ti.Width = 6
		ti.SetValue(v)
		a.timeInputs[i] = ti
	}
	a.timeFocus = 0
	a.timeInputs[0].Focus()
	a.view = viewScheduleDialog
}

func (a *App) handleScheduleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		a.view = viewMain
		return a, nil
	case "tab", "up", "down":
		a.timeInputs[a.timeFocus].Blur()
		a.timeFocus = (a.timeFocus + 1) % 2
		a.timeInputs[a.timeFocus].Focus()
		return a, nil
	case "enter":
		a.submitSchedule()
		return a, nil
	}

	var cmd tea.Cmd
	a.timeInputs[a.timeFocus], cmd = a.timeInputs[a.timeFocus].Update(msg)
	return a, cmd
}

func (a *App) submitSchedule() {
	start, err := date.ParseClock(strings.TrimSpace(a.timeInputs[0].Value()))
	if err != nil {
		a.err = err
		return
	}
	end, err := date.ParseClock(strings.TrimSpace(a.timeInputs[1].Value()))
	if err != nil {
		a.err = err
		return
	}
	if err := a.sched.Schedule(a.schedTask, a.schedDate, &start, &end); err != nil {
		a.err = err
		return
	}
	a.save()
	a.view = viewMain
	a.setStatus(fmt.Sprintf("Scheduled %q on %s", a.schedTask, a.schedDate))
}

func (a *App) viewScheduleDialog() string {
	content := labelStyle.Render("Schedule task") + "\n\n" +
		fmt.Sprintf("  %s\n  on %s\n\n", truncate(a.schedTask, 40), a.schedDate.Format("Mon Jan 2 2006")) +
		"  Start " + a.timeInputs[0].View() + "\n" +
		"  End   " + a.timeInputs[1].View() + "\n\n" +
		dimStyle.Render("enter:save  tab:next  esc:cancel")

	return dialogStyle.Render(content)
}

// --- Add-on-date dialog ---

func (a *App) openAddOnDate() {
	ti := textinput.New()
	ti.Placeholder = "task name"
	ti.CharLimit = 120
	ti.Width = 40
	ti.Focus()
	a.addInput = ti
	a.view = viewAddOnDate
}

func (a *App) handleAddOnDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		a.view = viewMain
		return a, nil
	case "enter":
		a.submitAddOnDate()
		return a, nil
	}

	var cmd tea.Cmd
	a.addInput, cmd = a.addInput.Update(msg)
	return a, cmd
}

// submitAddOnDate creates a task born scheduled on the selected day,
// priced from goal memory when a close name is remembered.
func (a *App) submitAddOnDate() {
	name := strings.TrimSpace(a.addInput.Value())
	if name == "" {
		return
	}

	value, hours := task.DefaultValue, task.DefaultHours
	if e, _, ok := a.mem.Recall(name); ok {
		value, hours = e.Value, e.Hours
	}
	start, end := a.sched.DefaultTimes(a.calDay)
	if _, err := a.sched.ScheduleNew(name, value, hours, a.calDay, &start, &end); err != nil {
		a.err = err
		return
	}
	a.save()
	a.refreshTable()
	a.view = viewMain
	a.setStatus(fmt.Sprintf("Added %q on %s at %s", name, a.calDay, start))
}

func (a *App) viewAddOnDate() string {
	content := labelStyle.Render("Add task on "+a.calDay.Format("Mon Jan 2")) + "\n\n" +
		"  " + a.addInput.View() + "\n\n" +
		dimStyle.Render("enter:add  esc:cancel")

	return dialogStyle.Render(content)
}

// --- Export dialog ---

func (a *App) openExportDialog() {
	if a.tasks.Len() == 0 {
		a.setStatus("Nothing to export")
		return
	}
	ti := textinput.New()
	ti.CharLimit = 250
	ti.Width = 60
	path := export.DefaultPath()
	if a.cfg.ExportDir != "" {
		path = filepath.Join(a.cfg.ExportDir, filepath.Base(path))
	}
	ti.SetValue(path)
	ti.Focus()
	a.exportInput = ti
	a.view = viewExportDialog
}

func (a *App) handleExportDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		a.view = viewMain
		return a, nil
	case "enter":
		path := strings.TrimSpace(a.exportInput.Value())
		if path == "" {
			return a, nil
		}
		a.view = viewMain
		a.setStatus("Exporting...")
		return a, a.exportCmd(path)
	}

	var cmd tea.Cmd
	a.exportInput, cmd = a.exportInput.Update(msg)
	return a, cmd
}

func (a *App) viewExportDialog() string {
	content := labelStyle.Render("Export spreadsheet") + "\n\n" +
		"  " + a.exportInput.View() + "\n\n" +
		dimStyle.Render("enter:export  esc:cancel")

	return dialogStyle.Render(content)
}

// --- Confirmations ---

func (a *App) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if a.tasks.Remove(a.deleteName) {
			a.save()
			a.refreshTable()
			a.clampSelected()
			a.setStatus(fmt.Sprintf("Deleted %q", a.deleteName))
		}
		a.view = viewMain
	case "n", "N", keyEsc, "q":
		a.view = viewMain
	}
	return a, nil
}

func (a *App) viewConfirmDelete() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		"  " + truncate(a.deleteName, 50) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (a *App) handleConfirmClearKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		n := a.tasks.Len()
		a.tasks.Clear()
		a.save()
		a.refreshTable()
		a.selected = -1
		a.view = viewMain
		a.setStatus(fmt.Sprintf("Removed %d task(s)", n))
	case "n", "N", keyEsc, "q":
		a.view = viewMain
	}
	return a, nil
}

func (a *App) viewConfirmClear() string {
	content := errorStyle.Render("Clear ALL tasks?") + "\n\n" +
		fmt.Sprintf("  %d tasks will be removed from the plot.", a.tasks.Len()) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}
