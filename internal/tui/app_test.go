package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xuri/excelize/v2"

	"github.com/priplot/priplot/internal/config"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/memory"
	"github.com/priplot/priplot/internal/session"
	"github.com/priplot/priplot/internal/task"
)

func newTestApp(t *testing.T, tasks ...*task.Task) *App {
	t.Helper()
	dir := t.TempDir()

	list := task.NewList()
	for _, tk := range tasks {
		if err := list.Add(tk); err != nil {
			t.Fatal(err)
		}
	}
	store := session.New(filepath.Join(dir, "test"+session.Extension))
	mem, err := memory.Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	a := New(config.NewDefault(), list, store, mem)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a
}

func press(a *App, keys ...tea.KeyMsg) {
	for _, k := range keys {
		a.Update(k)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	a := newTestApp(t)
	if a.activeTab != tabInput {
		t.Fatalf("initial tab = %v, want input", a.activeTab)
	}

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeTab != tabPlot {
		t.Errorf("after tab: %v, want plot", a.activeTab)
	}
	press(a, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeTab != tabInput {
		t.Errorf("after full cycle: %v, want input", a.activeTab)
	}
	press(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	if a.activeTab != tabTable {
		t.Errorf("after shift+tab: %v, want table", a.activeTab)
	}
}

func TestInputAddsTask(t *testing.T) {
	a := newTestApp(t)

	press(a, runes("paint fence"))
	press(a, tea.KeyMsg{Type: tea.KeyDown})
	press(a, runes("4"))
	press(a, tea.KeyMsg{Type: tea.KeyDown})
	press(a, runes("2"))
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := a.tasks.Get("paint fence")
	if !ok {
		t.Fatal("task not added")
	}
	if got.Value != 4 || got.Hours != 2 {
		t.Errorf("task = (%v, %v), want (4, 2)", got.Value, got.Hours)
	}
	if a.inputs[fieldName].Value() != "" {
		t.Error("name field not cleared after add")
	}
	if !fileExists(a.store.Path()) {
		t.Error("session not saved after add")
	}
}

func TestInputBlankFieldsUseDefaults(t *testing.T) {
	a := newTestApp(t)

	press(a, runes("quick one"), tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := a.tasks.Get("quick one")
	if !ok {
		t.Fatal("task not added")
	}
	if got.Value != task.DefaultValue || got.Hours != task.DefaultHours {
		t.Errorf("task = (%v, %v), want placeholder defaults", got.Value, got.Hours)
	}
}

func TestInputRejectsDuplicate(t *testing.T) {
	a := newTestApp(t, task.New("dup", 3, 2))

	press(a, runes("dup"), tea.KeyMsg{Type: tea.KeyEnter})

	if a.err == nil {
		t.Error("duplicate add did not surface an error")
	}
	if a.tasks.Len() != 1 {
		t.Errorf("task count = %d, want 1", a.tasks.Len())
	}
}

func TestKeyboardDragChangesPriority(t *testing.T) {
	a := newTestApp(t, task.New("move me", 3, 2))
	a.activeTab = tabPlot
	a.selected = 0

	before, _ := a.tasks.Get("move me")
	origValue := before.Value

	press(a, runes("g"))
	if _, dragging := a.surf.Dragging(); !dragging {
		t.Fatal("g did not grab the selected point")
	}
	press(a, tea.KeyMsg{Type: tea.KeyRight})

	after, _ := a.tasks.Get("move me")
	if after.Value <= origValue {
		t.Errorf("value = %v after right nudge, want > %v", after.Value, origValue)
	}

	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	if _, dragging := a.surf.Dragging(); dragging {
		t.Error("enter did not drop the point")
	}
	if !fileExists(a.store.Path()) {
		t.Error("session not saved after drop")
	}
}

func TestDragCancelRestores(t *testing.T) {
	a := newTestApp(t, task.New("move me", 3, 2))
	a.activeTab = tabPlot
	a.selected = 0

	press(a, runes("g"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyUp})
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	got, _ := a.tasks.Get("move me")
	if got.Value != 3 || got.Hours != 2 {
		t.Errorf("task = (%v, %v) after cancel, want origin (3, 2)", got.Value, got.Hours)
	}
}

func TestScheduleFromPlot(t *testing.T) {
	a := newTestApp(t, task.New("meeting", 3, 1))
	a.activeTab = tabPlot
	a.selected = 0
	a.calDay = date.New(2024, time.June, 1)

	press(a, runes("s"))
	if a.view != viewScheduleDialog {
		t.Fatal("s did not open the schedule dialog")
	}
	if a.timeInputs[0].Value() != "09:00" || a.timeInputs[1].Value() != "10:00" {
		t.Errorf("proposed times = %s-%s, want 09:00-10:00",
			a.timeInputs[0].Value(), a.timeInputs[1].Value())
	}

	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	got, _ := a.tasks.Get("meeting")
	if !got.IsScheduled() || !got.ScheduledDate.Equal(a.calDay) {
		t.Errorf("task not scheduled on %s", a.calDay)
	}

	// The next proposal on the same day chains after the booked slot.
	a.selected = 0
	if err := a.tasks.Add(task.New("followup", 2, 1)); err != nil {
		t.Fatal(err)
	}
	start, end := a.sched.DefaultTimes(a.calDay)
	if start.String() != "10:30" || end.String() != "11:30" {
		t.Errorf("chained times = %s-%s, want 10:30-11:30", start, end)
	}
}

func TestUnscheduleKey(t *testing.T) {
	a := newTestApp(t, task.New("meeting", 3, 1))
	a.activeTab = tabPlot
	a.selected = 0
	a.calDay = date.New(2024, time.June, 1)

	press(a, runes("s"), tea.KeyMsg{Type: tea.KeyEnter})
	press(a, runes("u"))

	got, _ := a.tasks.Get("meeting")
	if got.IsScheduled() {
		t.Error("u did not unschedule the task")
	}

	// A second u on an unscheduled task surfaces an error toast.
	press(a, runes("u"))
	if a.err == nil {
		t.Error("unscheduling an unscheduled task did not error")
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	a := newTestApp(t, task.New("doomed", 3, 2))
	a.activeTab = tabPlot
	a.selected = 0

	press(a, runes("d"))
	if a.view != viewConfirmDelete {
		t.Fatal("d did not open the confirmation")
	}
	press(a, runes("n"))
	if a.tasks.Len() != 1 {
		t.Fatal("n deleted the task")
	}

	press(a, runes("d"), runes("y"))
	if a.tasks.Len() != 0 {
		t.Error("y did not delete the task")
	}
}

func TestCalendarNavigation(t *testing.T) {
	a := newTestApp(t)
	a.calDay = date.New(2024, time.January, 31)
	a.calMonth = firstOfMonth(a.calDay)

	a.calendarMove(1)
	if a.calDay.String() != "2024-02-01" {
		t.Errorf("next day = %s, want 2024-02-01", a.calDay)
	}
	if a.calMonth.Month() != time.February {
		t.Errorf("month did not follow the day: %s", a.calMonth)
	}

	a.calDay = date.New(2024, time.January, 31)
	a.calMonth = firstOfMonth(a.calDay)
	a.calendarMonth(1)
	// January 31 clamps to February 29 in a leap year.
	if a.calDay.String() != "2024-02-29" {
		t.Errorf("month shift = %s, want 2024-02-29", a.calDay)
	}
}

func TestDateAtCalendarCell(t *testing.T) {
	a := newTestApp(t)
	// June 2024 starts on a Saturday; with a Monday week start the
	// first row has five lead-in blanks.
	a.calMonth = date.New(2024, time.June, 1)
	a.calDay = a.calMonth

	d, ok := a.dateAtCalendarCell(5, 0)
	if !ok || d.String() != "2024-06-01" {
		t.Errorf("cell (5,0) = %v %v, want 2024-06-01", d, ok)
	}
	d, ok = a.dateAtCalendarCell(0, 1)
	if !ok || d.String() != "2024-06-03" {
		t.Errorf("cell (0,1) = %v %v, want 2024-06-03", d, ok)
	}
	if _, ok := a.dateAtCalendarCell(0, 0); ok {
		t.Error("lead-in blank resolved to a date")
	}
	if _, ok := a.dateAtCalendarCell(3, 5); ok {
		t.Error("cell past the end of the month resolved to a date")
	}
}

func TestClearAllConfirm(t *testing.T) {
	a := newTestApp(t, task.New("a", 3, 2), task.New("b", 4, 1))
	a.activeTab = tabPlot

	press(a, runes("C"), runes("y"))
	if a.tasks.Len() != 0 {
		t.Errorf("task count = %d after clear, want 0", a.tasks.Len())
	}
}

func TestTabSwitchCancelsDrag(t *testing.T) {
	a := newTestApp(t, task.New("move me", 3, 2))
	a.activeTab = tabPlot
	a.selected = 0

	press(a, runes("g"), tea.KeyMsg{Type: tea.KeyRight})
	press(a, tea.KeyMsg{Type: tea.KeyTab})

	if _, dragging := a.surf.Dragging(); dragging {
		t.Error("tab switch left the drag active")
	}
	got, _ := a.tasks.Get("move me")
	if got.Value != 3 || got.Hours != 2 {
		t.Errorf("task = (%v, %v) after tab switch, want origin (3, 2)", got.Value, got.Hours)
	}
}

func TestExportWritesSnapshotNotLiveList(t *testing.T) {
	a := newTestApp(t, task.New("high", 5, 1), task.New("low", 1, 5))
	a.activeTab = tabPlot
	a.selected = 1

	// Build the export command, then keep mutating the live list before
	// the deferred write runs, the way drags land between Cmd dispatch
	// and completion.
	path := filepath.Join(t.TempDir(), "out.xlsx")
	cmd := a.exportCmd(path)

	press(a, runes("g"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	moved, _ := a.tasks.Get("low")
	if moved.Value == 1 {
		t.Fatal("drag did not move the task")
	}

	if msg := cmd(); msg == nil {
		t.Fatal("export command returned no message")
	} else if em, ok := msg.(errMsg); ok {
		t.Fatalf("export failed: %v", em.err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Priorities")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 tasks", len(rows))
	}
	// Row values reflect the list as it was when the command was built.
	if rows[2][1] != "low" || rows[2][2] != "1" {
		t.Errorf("snapshot row = %q value %q, want low with value 1", rows[2][1], rows[2][2])
	}
}

func TestStaleToastExpiryIgnored(t *testing.T) {
	a := newTestApp(t)
	a.setStatus("first")
	staleSeq := a.statusSeq
	a.setStatus("second")

	a.Update(statusExpiredMsg{seq: staleSeq})
	if a.status != "second" {
		t.Errorf("status = %q after stale expiry, want %q", a.status, "second")
	}

	a.Update(statusExpiredMsg{seq: a.statusSeq})
	if a.status != "" {
		t.Errorf("status = %q after matching expiry, want cleared", a.status)
	}
}

func TestClickInPanelGapSelectsNoDate(t *testing.T) {
	a := newTestApp(t, task.New("a", 3, 2))
	a.activeTab = tabPlot
	a.calMonth = firstOfMonth(date.New(2024, time.June, 1))

	panelX := axisGutter + a.surf.Width() + 3
	gridTop := headerChrome + 2
	if _, ok := a.dateAtClick(panelX-1, gridTop+1); ok {
		t.Error("click left of the calendar grid resolved to a date")
	}
	if _, ok := a.dateAtClick(panelX, gridTop+1); !ok {
		t.Error("click on the grid's first column did not resolve")
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
