package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/priplot/priplot/internal/clipboard"
	"github.com/priplot/priplot/internal/task"
)

const (
	fieldName = iota
	fieldValue
	fieldHours
	fieldCount
)

func (a *App) initInputs() {
	a.inputs = make([]textinput.Model, fieldCount)

	name := textinput.New()
	name.Placeholder = "task name"
	name.CharLimit = 120
	name.Width = 40
	a.inputs[fieldName] = name

	value := textinput.New()
	value.Placeholder = fmt.Sprintf("%.1f", task.DefaultValue)
	value.CharLimit = 5
	value.Width = 8
	a.inputs[fieldValue] = value

	hours := textinput.New()
	hours.Placeholder = fmt.Sprintf("%.1f", task.DefaultHours)
	hours.CharLimit = 5
	hours.Width = 8
	a.inputs[fieldHours] = hours

	a.focusInput(fieldName)
}

func (a *App) focusInput(i int) {
	a.focusIdx = i
	for j := range a.inputs {
		if j == i {
			a.inputs[j].Focus()
		} else {
			a.inputs[j].Blur()
		}
	}
}

func (a *App) blurInputs() {
	for j := range a.inputs {
		a.inputs[j].Blur()
	}
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return a, tea.Quit
	case "up":
		a.focusInput((a.focusIdx + fieldCount - 1) % fieldCount)
		return a, nil
	case "down":
		a.focusInput((a.focusIdx + 1) % fieldCount)
		return a, nil
	case "enter":
		a.submitInput()
		return a, nil
	case "ctrl+v":
		a.importClipboard()
		return a, nil
	case "ctrl+r":
		a.applySuggestion()
		return a, nil
	}

	var cmd tea.Cmd
	a.inputs[a.focusIdx], cmd = a.inputs[a.focusIdx].Update(msg)
	if a.focusIdx == fieldName {
		a.updateSuggestion()
	}
	return a, cmd
}

// submitInput validates the three fields and adds the task. Blank value
// or hours fall back to a remembered entry for the name, then to the
// placeholder defaults.
func (a *App) submitInput() {
	name := strings.TrimSpace(a.inputs[fieldName].Value())
	if name == "" {
		a.focusInput(fieldName)
		return
	}

	value, hours := task.DefaultValue, task.DefaultHours
	if a.recalled != nil {
		value, hours = a.recalled.Value, a.recalled.Hours
	}
	var err error
	if v := strings.TrimSpace(a.inputs[fieldValue].Value()); v != "" {
		if value, err = strconv.ParseFloat(v, 64); err != nil {
			a.err = fmt.Errorf("value %q is not a number", v)
			a.focusInput(fieldValue)
			return
		}
	}
	if h := strings.TrimSpace(a.inputs[fieldHours].Value()); h != "" {
		if hours, err = strconv.ParseFloat(h, 64); err != nil {
			a.err = fmt.Errorf("time %q is not a number", h)
			a.focusInput(fieldHours)
			return
		}
	}

	if err := a.tasks.Add(task.New(name, value, hours)); err != nil {
		a.err = err
		return
	}
	a.mem.Remember(name, value, hours)
	_ = a.mem.Save()
	a.save()
	a.refreshTable()

	for i := range a.inputs {
		a.inputs[i].SetValue("")
	}
	a.suggestion = ""
	a.recalled = nil
	a.focusInput(fieldName)
	a.setStatus(fmt.Sprintf("Added %q", name))
}

// importClipboard adds one task per clipboard entry, skipping names
// already on the plot.
func (a *App) importClipboard() {
	names, err := clipboard.ReadTasks()
	if err != nil {
		a.err = err
		return
	}

	added := 0
	for _, name := range names {
		value, hours := task.DefaultValue, task.DefaultHours
		if e, _, ok := a.mem.Recall(name); ok {
			value, hours = e.Value, e.Hours
		}
		if err := a.tasks.Add(task.New(name, value, hours)); err != nil {
			continue
		}
		added++
	}
	if added == 0 {
		a.setStatus("Nothing new on the clipboard")
		return
	}
	a.save()
	a.refreshTable()
	a.setStatus(fmt.Sprintf("Imported %d task(s) from clipboard", added))
}

// updateSuggestion refreshes the goal-memory hint for the typed name.
func (a *App) updateSuggestion() {
	name := strings.TrimSpace(a.inputs[fieldName].Value())
	if len(name) < 3 {
		a.suggestion = ""
		a.recalled = nil
		return
	}
	e, _, ok := a.mem.Recall(name)
	if !ok {
		a.suggestion = ""
		a.recalled = nil
		return
	}
	a.recalled = &e
	a.suggestion = fmt.Sprintf("remembered %q: value %.1f, time %.1fh (ctrl+r to fill)",
		e.Name, e.Value, e.Hours)
}

// applySuggestion copies the remembered priority into the fields.
func (a *App) applySuggestion() {
	if a.recalled == nil {
		return
	}
	a.inputs[fieldValue].SetValue(fmt.Sprintf("%.1f", a.recalled.Value))
	a.inputs[fieldHours].SetValue(fmt.Sprintf("%.1f", a.recalled.Hours))
}

func (a *App) viewInput() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Add a task") + "\n\n")
	b.WriteString("  Name          " + a.inputs[fieldName].View() + "\n")
	b.WriteString(fmt.Sprintf("  Value (%.0f-%.0f)   ", task.MinValue, task.MaxValue) +
		a.inputs[fieldValue].View() + "\n")
	b.WriteString(fmt.Sprintf("  Time h (%.1f-%.0f) ", task.MinHours, task.MaxHours) +
		a.inputs[fieldHours].View() + "\n")

	if a.suggestion != "" {
		b.WriteString("\n  " + suggestionStyle.Render(a.suggestion) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("  Blank value/time use remembered or placeholder numbers."))

	recent := a.tasks.Tasks()
	if len(recent) > 0 {
		b.WriteString("\n\n" + labelStyle.Render("On the plot") + "\n")
		start := maxInt(0, len(recent)-8)
		for _, t := range recent[start:] {
			line := fmt.Sprintf("  %-40s value %.1f · %.1fh", truncate(t.Name, 40), t.Value, t.Hours)
			b.WriteString(line + "\n")
		}
	}

	return a.fitBody(b.String())
}

// fitBody pads or clips tab content to the available height so the
// status bar stays pinned to the bottom row.
func (a *App) fitBody(s string) string {
	target := a.height - headerChrome - footerChrome
	if target <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > target {
		lines = lines[:target]
	}
	for len(lines) < target {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
