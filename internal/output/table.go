package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/priplot/priplot/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Score colors aligned with the TUI plot palette: gray for cold
	// tasks up to red for do-it-now.
	scoreStyles = []struct {
		above float64
		style lipgloss.Style
	}{
		{6.0, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)},
		{3.0, lipgloss.NewStyle().Foreground(lipgloss.Color("208"))},
		{1.5, lipgloss.NewStyle().Foreground(lipgloss.Color("226"))},
		{0.5, lipgloss.NewStyle().Foreground(lipgloss.Color("34"))},
		{0.0, lipgloss.NewStyle().Foreground(lipgloss.Color("242"))},
	}

	scheduleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	colorDisabled bool
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	scheduleStyle = lipgloss.NewStyle()
	colorDisabled = true
}

// RankTable renders tasks as a table ordered by priority score descending.
func RankTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	nameW := 5
	for _, t := range tasks {
		nameW = max(nameW, min(len(t.Name)+pad, 50)) //nolint:mnd // max name column width
	}

	header := fmt.Sprintf("%-6s %-7s %-6s %-9s %-*s %s",
		"RANK", "SCORE", "VALUE", "TIME (H)", nameW, "TASK", "SCHEDULED")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for i, t := range tasks {
		name := t.Name
		const maxName = 48
		if len(name) > maxName {
			name = name[:maxName-3] + "..."
		}

		sched := scheduleDisplay(t)
		if sched == "" {
			sched = dimStyle.Render("--")
		} else {
			sched = scheduleStyle.Render(sched)
		}

		row := fmt.Sprintf("%-6d %s %-6.1f %-9.1f %-*s %s",
			i+1,
			padRight(scoreCell(t.Score()), 7),
			t.Value, t.Hours,
			nameW, name,
			sched)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task, rank int) {
	titleLine := fmt.Sprintf("#%d: %s", rank, t.Name)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len([]rune(titleLine))))

	printField(w, "Score", scoreCell(t.Score()))
	printField(w, "Value", fmt.Sprintf("%.1f", t.Value))
	printField(w, "Time", fmt.Sprintf("%.1fh", t.Hours))
	if t.IsScheduled() {
		printField(w, "Scheduled", scheduleStyle.Render(scheduleDisplay(t)))
	} else {
		printField(w, "Scheduled", dimStyle.Render("--"))
	}
	if !t.Created.IsZero() {
		printField(w, "Created", t.Created.Format("2006-01-02 15:04"))
	}
}

// DayTable renders the tasks scheduled on one date, ordered by start time.
func DayTable(w io.Writer, day string, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks scheduled on "+day+".")
		return
	}
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(day))

	for _, t := range tasks {
		window := "--:-- - --:--"
		if t.StartTime != nil && t.EndTime != nil {
			window = t.StartTime.String() + " - " + t.EndTime.String()
		}
		fmt.Fprintf(w, "  %s  %s %s\n",
			scheduleStyle.Render(window),
			padRight(scoreCell(t.Score()), 7),
			t.Name)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// scoreCell renders a score with the color band it falls in.
func scoreCell(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	if colorDisabled {
		return s
	}
	for _, band := range scoreStyles {
		if score >= band.above {
			return band.style.Render(s)
		}
	}
	return s
}

// scheduleDisplay returns "date start-end", "date", or "".
func scheduleDisplay(t *task.Task) string {
	if !t.IsScheduled() {
		return ""
	}
	s := t.ScheduledDate.String()
	if t.StartTime != nil && t.EndTime != nil {
		s += " " + t.StartTime.String() + "-" + t.EndTime.String()
	}
	return s
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
