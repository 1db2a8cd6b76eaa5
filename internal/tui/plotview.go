package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/task"
)

// axisGutter is the width of the hours labels left of the plot box.
const axisGutter = 5

var (
	plotBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	axisLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	selectedMarkStyle = lipgloss.NewStyle().Reverse(true).Bold(true)

	dragHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
)

const (
	markUnscheduled = '●'
	markScheduled   = '◆'
)

func (a *App) handlePlotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, dragging := a.surf.Dragging(); dragging {
		return a.handleDragKey(msg)
	}

	switch msg.String() {
	case "q", keyEsc:
		return a, tea.Quit
	case "?":
		a.view = viewHelp
	case "j", "down":
		if a.tasks.Len() > 0 {
			a.selected = (a.selected + 1) % a.tasks.Len()
		}
	case "k", "up":
		if a.tasks.Len() > 0 {
			a.selected = (a.selected + a.tasks.Len() - 1) % a.tasks.Len()
		}
	case "g", "enter":
		if t := a.selectedTask(); t != nil {
			if err := a.surf.BeginDrag(t.Name); err != nil {
				a.err = err
			}
		}
	case "s":
		a.openScheduleDialog()
	case "u":
		a.unscheduleSelected()
	case "a":
		a.openAddOnDate()
	case "d":
		if t := a.selectedTask(); t != nil {
			a.deleteName = t.Name
			a.view = viewConfirmDelete
		}
	case "C":
		if a.tasks.Len() > 0 {
			a.view = viewConfirmClear
		}
	case "e":
		a.openExportDialog()
	case "h", "left":
		a.calendarMove(-1)
	case "l", "right":
		a.calendarMove(1)
	case "[":
		a.calendarMonth(-1)
	case "]":
		a.calendarMonth(1)
	case "t":
		a.calDay = date.Today()
		a.calMonth = firstOfMonth(a.calDay)
	}
	return a, nil
}

// handleDragKey moves the grabbed point one grid cell per arrow press.
func (a *App) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.nudge(0, -1)
	case "down", "j":
		a.nudge(0, 1)
	case "left", "h":
		a.nudge(-1, 0)
	case "right", "l":
		a.nudge(1, 0)
	case "g", "enter":
		a.surf.EndDrag()
		a.save()
		a.refreshTable()
	case keyEsc:
		a.surf.CancelDrag()
	}
	return a, nil
}

func (a *App) nudge(dx, dy int) {
	if err := a.surf.NudgeDrag(dx, dy); err != nil {
		a.err = err
	}
}

func (a *App) unscheduleSelected() {
	t := a.selectedTask()
	if t == nil {
		return
	}
	if err := a.sched.Clear(t.Name); err != nil {
		a.err = err
		return
	}
	a.save()
	a.setStatus(fmt.Sprintf("Unscheduled %q", t.Name))
}

// --- Mouse ---

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.view != viewMain || a.activeTab != tabPlot {
		return a, nil
	}

	// Surface-relative cell, inside the plot box border.
	sx := msg.X - axisGutter - 1
	sy := msg.Y - headerChrome - 1
	onSurface := sx >= 0 && sx < a.surf.Width() && sy >= 0 && sy < a.surf.Height()

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if onSurface {
			if t := a.surf.Hit(sx, sy); t != nil {
				a.selectByName(t.Name)
				if err := a.surf.BeginDrag(t.Name); err != nil {
					a.err = err
				}
			}
			return a, nil
		}
		if d, ok := a.dateAtClick(msg.X, msg.Y); ok {
			a.calDay = d
		}
	case msg.Action == tea.MouseActionMotion:
		if _, dragging := a.surf.Dragging(); dragging {
			if onSurface {
				if err := a.surf.MoveDragToCell(sx, sy); err != nil {
					a.err = err
				}
			}
			return a, nil
		}
		if onSurface {
			if t := a.surf.Hit(sx, sy); t != nil {
				a.hoverName = t.Name
			} else {
				a.hoverName = ""
			}
		}
	case msg.Action == tea.MouseActionRelease:
		if name, dragging := a.surf.Dragging(); dragging {
			a.surf.EndDrag()
			a.selectByName(name)
			a.save()
			a.refreshTable()
		}
	}
	return a, nil
}

// dateAtClick resolves a click in the side panel's calendar grid.
func (a *App) dateAtClick(x, y int) (date.Date, bool) {
	panelX := axisGutter + a.surf.Width() + 3
	if x < panelX {
		// In the gap between the plot box and the panel, integer
		// division would truncate onto column 0.
		return date.Date{}, false
	}
	gridTop := headerChrome + 2 // calendar title + weekday header
	return a.dateAtCalendarCell((x-panelX)/3, y-gridTop)
}

func (a *App) selectByName(name string) {
	for i, t := range a.tasks.Ranked() {
		if t.Name == name {
			a.selected = i
			return
		}
	}
}

// --- Rendering ---

func (a *App) viewPlot() string {
	if a.tasks.Len() == 0 {
		empty := dimStyle.Render("\n  No tasks yet. Switch to the Input tab to add some,\n  or press ctrl+v there to import from the clipboard.")
		return a.fitBody(empty)
	}

	plotBlock := a.renderPlotBox()
	panel := a.renderSidePanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, plotBlock, " ", panel)
	body = lipgloss.JoinVertical(lipgloss.Left, body, a.renderTooltip())
	return a.fitBody(body)
}

// renderPlotBox draws the value/time scatter with its axis labels.
func (a *App) renderPlotBox() string {
	w, h := a.surf.Width(), a.surf.Height()

	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	selectedName := ""
	if t := a.selectedTask(); t != nil {
		selectedName = t.Name
	}

	// Draw in insertion order; the selected task last so it stays on top.
	var selX, selY = -1, -1
	for _, p := range a.surf.Points() {
		mark := markUnscheduled
		if p.Task.IsScheduled() {
			mark = markScheduled
		}
		cell := a.scoreStyle(p.Task.Score()).Render(string(mark))
		if p.Task.Name == selectedName {
			selX, selY = p.X, p.Y
			continue
		}
		if p.Y >= 0 && p.Y < h && p.X >= 0 && p.X < w {
			grid[p.Y][p.X] = cell
		}
	}
	if selX >= 0 && selY >= 0 && selY < h && selX < w {
		t := a.selectedTask()
		mark := markUnscheduled
		if t.IsScheduled() {
			mark = markScheduled
		}
		grid[selY][selX] = selectedMarkStyle.Render(string(mark))
	}

	rows := make([]string, h)
	for y := range grid {
		rows[y] = strings.Join(grid[y], "")
	}
	box := plotBoxStyle.Render(strings.Join(rows, "\n"))

	// Hours labels down the left edge, high hours at the top.
	boxLines := strings.Split(box, "\n")
	labeled := make([]string, len(boxLines))
	for i, line := range boxLines {
		label := strings.Repeat(" ", axisGutter)
		switch i {
		case 1:
			label = axisLabelStyle.Render(fmt.Sprintf("%4.1f ", task.MaxHours))
		case len(boxLines) - 2:
			label = axisLabelStyle.Render(fmt.Sprintf("%4.1f ", task.MinHours))
		case len(boxLines) / 2:
			label = axisLabelStyle.Render("time ")
		}
		labeled[i] = label + line
	}

	// Value scale under the box.
	scaleLine := strings.Repeat(" ", axisGutter+1) +
		axisLabelStyle.Render(fmt.Sprintf("%-*.1f%*.1f", (w+1)/2, task.MinValue, w/2, task.MaxValue))
	valueLabel := strings.Repeat(" ", axisGutter+1) +
		axisLabelStyle.Render(fmt.Sprintf("%*s", (w+5)/2, "value"))

	return lipgloss.JoinVertical(lipgloss.Left,
		append(labeled, scaleLine, valueLabel)...)
}

// renderSidePanel stacks the calendar and the selected day's agenda.
func (a *App) renderSidePanel() string {
	var b strings.Builder
	b.WriteString(a.renderCalendar())
	b.WriteString("\n\n")
	b.WriteString(panelTitleStyle.Render(a.calDay.Format("Mon Jan 2")) + "\n")

	day := a.sched.TasksOn(a.calDay)
	if len(day) == 0 {
		b.WriteString(dimStyle.Render("nothing scheduled"))
	}
	for _, t := range day {
		window := "--:--"
		if t.StartTime != nil && t.EndTime != nil {
			window = t.StartTime.String() + "-" + t.EndTime.String()
		}
		b.WriteString(fmt.Sprintf("%s %s\n", axisLabelStyle.Render(window), truncate(t.Name, panelWidth-13)))
	}

	return lipgloss.NewStyle().Width(panelWidth).Render(b.String())
}

// renderTooltip shows the hovered or selected task under the plot.
func (a *App) renderTooltip() string {
	if name, dragging := a.surf.Dragging(); dragging {
		if t, ok := a.tasks.Get(name); ok {
			return dragHintStyle.Render(fmt.Sprintf(" dragging %q  value %.1f · %.1fh  (enter drop, esc cancel)",
				t.Name, t.Value, t.Hours))
		}
	}

	t := a.hoveredOrSelected()
	if t == nil {
		return ""
	}
	line := fmt.Sprintf(" %s  value %.1f · %.1fh · score %.2f", t.Name, t.Value, t.Hours, t.Score())
	if t.IsScheduled() {
		line += "  on " + t.ScheduledDate.String()
		if t.StartTime != nil && t.EndTime != nil {
			line += " " + t.StartTime.String() + "-" + t.EndTime.String()
		}
	}
	return a.scoreStyle(t.Score()).Render(line)
}

func (a *App) hoveredOrSelected() *task.Task {
	if a.hoverName != "" {
		if t, ok := a.tasks.Get(a.hoverName); ok {
			return t
		}
		a.hoverName = ""
	}
	return a.selectedTask()
}

// scoreStyle maps a priority score onto the configured color ladder.
func (a *App) scoreStyle(score float64) lipgloss.Style {
	thresholds := a.cfg.SortedThresholds()
	for i := len(thresholds) - 1; i >= 0; i-- {
		if score >= thresholds[i].Above {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(thresholds[i].Color))
		}
	}
	return dimStyle
}
