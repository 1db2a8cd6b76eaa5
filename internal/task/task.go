// Package task holds the in-memory task collection and priority scoring.
package task

import (
	"time"

	"github.com/priplot/priplot/internal/date"
)

// Value and hours bounds. These are the plot's axis ranges; drag updates
// clamp to them and dialog input is rejected outside them.
const (
	MinValue = 1.0
	MaxValue = 5.0
	MinHours = 0.5
	MaxHours = 8.0

	// Placeholder values for tasks created by name only (clipboard import,
	// quick add). The user refines them on the plot.
	DefaultValue = 3.0
	DefaultHours = 2.0
)

// Task represents a single prioritizable task.
type Task struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Hours float64 `json:"time"`

	// Schedule fields; nil while the task is unscheduled.
	ScheduledDate *date.Date  `json:"scheduled_date,omitempty"`
	StartTime     *date.Clock `json:"start_time,omitempty"`
	EndTime       *date.Clock `json:"end_time,omitempty"`

	Created time.Time `json:"created,omitempty"`
}

// New creates a task with the given priority inputs. The inputs are not
// validated here; use Validate before adding to a List.
func New(name string, value, hours float64) *Task {
	return &Task{Name: name, Value: value, Hours: hours, Created: time.Now()}
}

// NewDefault creates a task with placeholder value and hours.
func NewDefault(name string) *Task {
	return New(name, DefaultValue, DefaultHours)
}

// Score returns the priority score: value divided by hours. Higher is
// more urgent. Hours is guaranteed positive by validation, so the
// division is safe; the score is recomputed on every call and never
// cached.
func (t *Task) Score() float64 {
	return t.Value / t.Hours
}

// IsScheduled reports whether the task has a calendar date assigned.
func (t *Task) IsScheduled() bool {
	return t.ScheduledDate != nil
}

// Schedule assigns the task to a calendar date with an optional time
// range. A prior schedule is overwritten.
func (t *Task) Schedule(d date.Date, start, end *date.Clock) {
	t.ScheduledDate = &d
	t.StartTime = start
	t.EndTime = end
}

// ClearSchedule removes the task from the calendar.
func (t *Task) ClearSchedule() {
	t.ScheduledDate = nil
	t.StartTime = nil
	t.EndTime = nil
}
