package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/priplot/priplot/internal/date"
)

var (
	calHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	calWeekStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	calTodayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	calTaskStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	calSelStyle    = lipgloss.NewStyle().Reverse(true)
)

// weekOrder returns the seven weekdays starting from the configured
// first day of the week.
func (a *App) weekOrder() []time.Weekday {
	start := time.Monday
	if a.cfg.WeekStart == "sunday" {
		start = time.Sunday
	}
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(start) + i) % 7)
	}
	return days
}

// renderCalendar draws the displayed month with scheduled days
// highlighted and the selected day inverted.
func (a *App) renderCalendar() string {
	var b strings.Builder

	title := a.calMonth.Format("January 2006")
	b.WriteString(calHeaderStyle.Render(fmt.Sprintf("%-*s", panelWidth-2, title)) + "\n")

	order := a.weekOrder()
	heads := make([]string, len(order))
	for i, wd := range order {
		heads[i] = wd.String()[:2]
	}
	b.WriteString(calWeekStyle.Render(strings.Join(heads, " ")) + "\n")

	// Lead-in blanks before the first of the month.
	col := 0
	for order[col] != a.calMonth.Weekday() {
		b.WriteString("   ")
		col++
	}

	today := date.Today()
	for d := a.calMonth; d.Month() == a.calMonth.Month(); d = d.AddDays(1) {
		cell := fmt.Sprintf("%2d", d.Day())
		switch {
		case d.Equal(a.calDay):
			cell = calSelStyle.Render(cell)
		case a.sched.HasTasksOn(d):
			cell = calTaskStyle.Render(cell)
		case d.Equal(today):
			cell = calTodayStyle.Render(cell)
		}
		b.WriteString(cell)

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// calendarMove shifts the selected day, scrolling the month along.
func (a *App) calendarMove(days int) {
	a.calDay = a.calDay.AddDays(days)
	a.calMonth = firstOfMonth(a.calDay)
}

// calendarMonth shifts the displayed month, keeping the selected day's
// day-of-month when it exists in the target month.
func (a *App) calendarMonth(months int) {
	t := a.calMonth.AddDate(0, months, 0)
	a.calMonth = date.New(t.Year(), t.Month(), 1)

	day := a.calDay.Day()
	last := lastDayOf(a.calMonth)
	if day > last {
		day = last
	}
	a.calDay = date.New(a.calMonth.Year(), a.calMonth.Month(), day)
}

// dateAtCalendarCell resolves a click inside the rendered calendar grid
// to a date, given coordinates relative to the grid's top-left cell.
func (a *App) dateAtCalendarCell(col, row int) (date.Date, bool) {
	if col < 0 || col > 6 || row < 0 {
		return date.Date{}, false
	}
	order := a.weekOrder()
	lead := 0
	for order[lead] != a.calMonth.Weekday() {
		lead++
	}
	idx := row*7 + col - lead
	if idx < 0 || idx >= lastDayOf(a.calMonth) {
		return date.Date{}, false
	}
	return a.calMonth.AddDays(idx), true
}

func lastDayOf(firstOfMonth date.Date) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
