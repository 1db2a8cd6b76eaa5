// Package tui implements the interactive priority plot terminal UI.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/priplot/priplot/internal/config"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/export"
	"github.com/priplot/priplot/internal/memory"
	"github.com/priplot/priplot/internal/plot"
	"github.com/priplot/priplot/internal/schedule"
	"github.com/priplot/priplot/internal/session"
	"github.com/priplot/priplot/internal/task"
)

// tab identifies the active top-level tab.
type tab int

const (
	tabInput tab = iota
	tabPlot
	tabTable

	tabCount = 3
)

// view represents the current screen state.
type view int

const (
	viewMain view = iota
	viewScheduleDialog
	viewAddOnDate
	viewExportDialog
	viewConfirmClear
	viewConfirmDelete
	viewHelp
)

// Key and layout constants.
const (
	keyEsc = "esc"

	headerChrome = 2 // tab bar + separator line
	footerChrome = 2 // blank line + status bar
	panelWidth   = 26

	statusTicks = 4 * time.Second // how long a toast stays up
)

// App is the top-level bubbletea model.
type App struct {
	cfg   *config.Config
	tasks *task.List
	store *session.Store
	sched *schedule.Scheduler
	mem   *memory.Memory
	surf  *plot.Surface

	activeTab tab
	view      view
	width     int
	height    int

	err       error
	status    string
	statusSeq int // ties an expiry tick to the toast it was set for

	// Input tab fields: name, value, hours.
	inputs     []textinput.Model
	focusIdx   int
	suggestion string
	recalled   *memory.Entry

	// Plot tab state.
	selected  int // index into ranked order, -1 when none
	hoverName string
	calMonth  date.Date // first day of the displayed month
	calDay    date.Date // selected calendar day

	// Table tab.
	table table.Model

	// Schedule dialog.
	schedTask  string
	schedDate  date.Date
	timeInputs []textinput.Model // start, end
	timeFocus  int

	// Add-on-date dialog.
	addInput textinput.Model

	// Export dialog.
	exportInput textinput.Model

	// Delete confirmation.
	deleteName string

	// Help overlay, rendered lazily per width.
	helpCache string
	helpWidth int
}

// New creates the App model over a loaded task list and its session store.
func New(cfg *config.Config, tasks *task.List, store *session.Store, mem *memory.Memory) *App {
	a := &App{
		cfg:      cfg,
		tasks:    tasks,
		store:    store,
		mem:      mem,
		sched:    schedule.New(tasks),
		surf:     plot.NewSurface(tasks),
		selected: -1,
		calMonth: firstOfMonth(date.Today()),
		calDay:   date.Today(),
	}
	a.sched.SetDayStart(cfg.DayStartClock())
	a.initInputs()
	a.initTable()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Every new toast gets its own expiry
// tick scheduled here, tagged with the sequence it belongs to.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := a.statusSeq
	model, cmd := a.update(msg)
	if a.statusSeq != seq {
		cmd = tea.Batch(cmd, expireStatus(a.statusSeq))
	}
	return model, cmd
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.MouseMsg:
		return a.handleMouse(msg)
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil
	case ReloadMsg:
		a.reload()
		return a, nil
	case exportedMsg:
		a.setStatus("Exported to " + msg.path)
		return a, nil
	case statusExpiredMsg:
		// An expiry for a toast that has since been replaced is stale.
		if msg.seq == a.statusSeq {
			a.status = ""
		}
		return a, nil
	case errMsg:
		a.err = msg.err
		return a, nil
	}
	return a, nil
}

// setStatus replaces the status toast. The sequence bump invalidates
// any expiry tick still in flight for an earlier toast.
func (a *App) setStatus(text string) {
	a.status = text
	a.statusSeq++
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.view {
	case viewScheduleDialog:
		return a.viewScheduleDialog()
	case viewAddOnDate:
		return a.viewAddOnDate()
	case viewExportDialog:
		return a.viewExportDialog()
	case viewConfirmClear:
		return a.viewConfirmClear()
	case viewConfirmDelete:
		return a.viewConfirmDelete()
	case viewHelp:
		return a.viewHelp()
	}

	var body string
	switch a.activeTab {
	case tabInput:
		body = a.viewInput()
	case tabPlot:
		body = a.viewPlot()
	case tabTable:
		body = a.viewTable()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabBar(),
		body,
		"",
		a.renderStatusBar(),
	)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return a, tea.Quit
	}

	// Any key dismisses an error toast; the key still applies.
	a.err = nil

	switch a.view {
	case viewMain:
		return a.handleMainKey(msg)
	case viewScheduleDialog:
		return a.handleScheduleDialogKey(msg)
	case viewAddOnDate:
		return a.handleAddOnDateKey(msg)
	case viewExportDialog:
		return a.handleExportDialogKey(msg)
	case viewConfirmClear:
		return a.handleConfirmClearKey(msg)
	case viewConfirmDelete:
		return a.handleConfirmDeleteKey(msg)
	case viewHelp:
		a.view = viewMain
		return a, nil
	}
	return a, nil
}

func (a *App) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		a.switchTab((a.activeTab + 1) % tabCount)
		return a, nil
	case "shift+tab":
		a.switchTab((a.activeTab + tabCount - 1) % tabCount)
		return a, nil
	}

	switch a.activeTab {
	case tabInput:
		return a.handleInputKey(msg)
	case tabPlot:
		return a.handlePlotKey(msg)
	case tabTable:
		return a.handleTableKey(msg)
	}
	return a, nil
}

func (a *App) switchTab(t tab) {
	if _, dragging := a.surf.Dragging(); dragging {
		a.surf.CancelDrag()
	}
	a.activeTab = t
	if t == tabInput {
		a.focusInput(0)
	} else {
		a.blurInputs()
	}
	if t == tabTable {
		a.refreshTable()
	}
}

// reload replaces the task list from disk after an external change.
// Changes right after our own save are the save itself; skip those.
func (a *App) reload() {
	if a.store.SavedWithin(time.Second) {
		return
	}
	list, err := a.store.Load()
	if err != nil {
		a.err = err
		return
	}
	a.tasks = list
	a.sched = schedule.New(list)
	a.sched.SetDayStart(a.cfg.DayStartClock())
	a.surf = plot.NewSurface(list)
	a.layout()
	a.clampSelected()
	a.refreshTable()
	a.setStatus("Session reloaded")
}

// save writes the session and surfaces any failure as a toast.
func (a *App) save() {
	a.store.MarkModified()
	if err := a.store.Save(a.tasks); err != nil {
		a.err = err
	}
}

// layout recomputes child component sizes from the window size.
func (a *App) layout() {
	plotW, plotH := a.plotArea()
	a.surf.Resize(plotW, plotH)
	a.table.SetHeight(maxInt(3, a.height-headerChrome-footerChrome-1))
	a.sizeTableColumns()
}

// plotArea returns the surface size in cells, excluding the border,
// axis gutter, and side panel.
func (a *App) plotArea() (int, int) {
	w := a.width - panelWidth - axisGutter - 2
	h := a.height - headerChrome - footerChrome - 3
	return maxInt(10, w), maxInt(5, h)
}

func (a *App) rankedName(i int) string {
	ranked := a.tasks.Ranked()
	if i < 0 || i >= len(ranked) {
		return ""
	}
	return ranked[i].Name
}

func (a *App) selectedTask() *task.Task {
	name := a.rankedName(a.selected)
	if name == "" {
		return nil
	}
	t, _ := a.tasks.Get(name)
	return t
}

func (a *App) clampSelected() {
	if a.tasks.Len() == 0 {
		a.selected = -1
		return
	}
	if a.selected >= a.tasks.Len() {
		a.selected = a.tasks.Len() - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

// exportCmd writes the spreadsheet off the event loop. The list is
// snapshotted here, on the event loop, so the write goroutine never
// touches tasks the loop keeps mutating.
func (a *App) exportCmd(path string) tea.Cmd {
	snapshot := a.tasks.Clone()
	return func() tea.Msg {
		if err := export.Write(snapshot, path); err != nil {
			return errMsg{err}
		}
		return exportedMsg{path: path}
	}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher when the session file changes
// on disk.
type ReloadMsg struct{}

type errMsg struct{ err error }

type exportedMsg struct{ path string }

type statusExpiredMsg struct{ seq int }

func expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusTicks, func(time.Time) tea.Msg { return statusExpiredMsg{seq} })
}

// --- Styles ---

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	statusMsgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)

	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
)

// --- Chrome rendering ---

func (a *App) renderTabBar() string {
	names := []string{"Input", "Plot", "Priorities"}
	parts := make([]string, len(names))
	for i, n := range names {
		if tab(i) == a.activeTab {
			parts[i] = activeTabStyle.Render(n)
		} else {
			parts[i] = tabStyle.Render(n)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	sep := separatorStyle.Render(repeatRune('─', maxInt(0, a.width)))
	return lipgloss.JoinVertical(lipgloss.Left, bar, sep)
}

func (a *App) renderStatusBar() string {
	if a.err != nil {
		return errorStyle.Render("✗ " + a.err.Error() + "  (any key to dismiss)")
	}
	if a.status != "" {
		return statusMsgStyle.Render(a.status)
	}

	modified := ""
	if a.store.Modified() {
		modified = " [+]"
	}
	hints := ""
	switch a.activeTab {
	case tabInput:
		hints = "enter add · ↑/↓ field · ctrl+v clipboard · tab switch · ? help"
	case tabPlot:
		hints = "j/k select · g grab · s schedule · u unschedule · a add on day · e export · ? help"
	case tabTable:
		hints = "↑/↓ move · d delete · e export · ? help"
	}
	left := fmt.Sprintf("%d tasks%s", a.tasks.Len(), modified)
	return statusBarStyle.Render(left + "  ·  " + hints)
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func firstOfMonth(d date.Date) date.Date {
	return date.New(d.Year(), d.Month(), 1)
}
