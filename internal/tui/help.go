package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpText = `# priplot

Plot tasks by **value** against **time** and work on what scores highest.
The priority score is value divided by time; higher means do it sooner.

## Tabs

| Key | Action |
|-----|--------|
| tab / shift+tab | switch between Input, Plot, and Priorities |

## Input

| Key | Action |
|-----|--------|
| enter | add the task |
| up / down | move between fields |
| ctrl+v | import task names from the clipboard |
| ctrl+r | fill value and time from a remembered task |

## Plot

| Key | Action |
|-----|--------|
| j / k | select a task |
| g or enter | grab the selected point; arrows move it, enter drops, esc cancels |
| mouse drag | move a point directly |
| s | schedule the selected task on the highlighted day |
| u | unschedule the selected task |
| a | add a new task directly on the highlighted day |
| h / l, [ / ], t | move the calendar day, month, or jump to today |
| d | delete the selected task |
| e | export the ranking to a spreadsheet |
| C | clear all tasks |

Scheduled tasks render as diamonds, unscheduled as dots. Colors follow
the priority score.

## Priorities

| Key | Action |
|-----|--------|
| up / down | move through the ranking |
| d | delete the highlighted task |
| e | export the ranking to a spreadsheet |
`

// viewHelp renders the key reference, caching per terminal width.
func (a *App) viewHelp() string {
	width := a.width - 4
	if width < 20 {
		width = 20
	}
	if a.helpCache == "" || a.helpWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return helpText
		}
		out, err := r.Render(helpText)
		if err != nil {
			return helpText
		}
		a.helpCache = out
		a.helpWidth = width
	}
	return a.helpCache + dimStyle.Render("  any key to close")
}
