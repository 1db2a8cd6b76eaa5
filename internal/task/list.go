package task

import (
	"sort"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/date"
)

// List is the insertion-ordered task collection. It is the single
// authoritative store for the session; every view derives from it. Not
// safe for concurrent use — all mutation happens on the UI event loop.
type List struct {
	tasks []*Task
	index map[string]int
}

// NewList creates an empty task list.
func NewList() *List {
	return &List{index: make(map[string]int)}
}

// Add validates the task and appends it. Names are unique within a
// session; a duplicate is rejected without mutation.
func (l *List) Add(t *Task) error {
	if err := Validate(t); err != nil {
		return err
	}
	if _, exists := l.index[t.Name]; exists {
		return clierr.Newf(clierr.DuplicateTask, "task %q already exists", t.Name).
			WithDetails(map[string]any{"name": t.Name})
	}
	l.index[t.Name] = len(l.tasks)
	l.tasks = append(l.tasks, t)
	return nil
}

// Clone returns a deep copy of the list. The copy shares nothing with
// the original, so it can be read off the UI event loop while the
// original keeps mutating.
func (l *List) Clone() *List {
	out := &List{
		tasks: make([]*Task, len(l.tasks)),
		index: make(map[string]int, len(l.index)),
	}
	for i, t := range l.tasks {
		cp := *t
		if t.ScheduledDate != nil {
			d := *t.ScheduledDate
			cp.ScheduledDate = &d
		}
		if t.StartTime != nil {
			c := *t.StartTime
			cp.StartTime = &c
		}
		if t.EndTime != nil {
			c := *t.EndTime
			cp.EndTime = &c
		}
		out.tasks[i] = &cp
		out.index[cp.Name] = i
	}
	return out
}

// Get returns the task with the given name.
func (l *List) Get(name string) (*Task, bool) {
	i, ok := l.index[name]
	if !ok {
		return nil, false
	}
	return l.tasks[i], true
}

// Remove deletes the task with the given name. Insertion order of the
// remaining tasks is preserved.
func (l *List) Remove(name string) bool {
	i, ok := l.index[name]
	if !ok {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	delete(l.index, name)
	for j := i; j < len(l.tasks); j++ {
		l.index[l.tasks[j].Name] = j
	}
	return true
}

// Clear removes all tasks.
func (l *List) Clear() {
	l.tasks = nil
	l.index = make(map[string]int)
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns the tasks in insertion order. The slice is a copy; the
// pointed-to tasks are shared.
func (l *List) Tasks() []*Task {
	out := make([]*Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// SetPriority updates a task's value and hours after validation. This
// is the drag write-through path: callers clamp to the axis bounds
// first, so in-range input always succeeds and the updated score is
// immediately visible to every reader.
func (l *List) SetPriority(name string, value, hours float64) error {
	t, ok := l.Get(name)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "no task named %q", name)
	}
	if err := ValidateValue(value); err != nil {
		return err
	}
	if err := ValidateHours(hours); err != nil {
		return err
	}
	t.Value = value
	t.Hours = hours
	return nil
}

// Ranked returns the tasks ordered by descending priority score. The
// sort is stable, so score ties keep insertion order.
func (l *List) Ranked() []*Task {
	out := l.Tasks()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})
	return out
}

// Scheduled returns the tasks that have a calendar date, in insertion order.
func (l *List) Scheduled() []*Task {
	var out []*Task
	for _, t := range l.tasks {
		if t.IsScheduled() {
			out = append(out, t)
		}
	}
	return out
}

// Unscheduled returns the tasks without a calendar date, in insertion order.
func (l *List) Unscheduled() []*Task {
	var out []*Task
	for _, t := range l.tasks {
		if !t.IsScheduled() {
			out = append(out, t)
		}
	}
	return out
}

// On returns the tasks scheduled on the given date, ordered by start
// time ascending. Tasks without a start time sort last, keeping their
// relative insertion order.
func (l *List) On(d date.Date) []*Task {
	var out []*Task
	for _, t := range l.tasks {
		if t.IsScheduled() && t.ScheduledDate.Equal(d) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StartTime, out[j].StartTime
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return out
}

// HasTasksOn reports whether any task is scheduled on the given date.
// The calendar uses this to decide which day cells to highlight.
func (l *List) HasTasksOn(d date.Date) bool {
	for _, t := range l.tasks {
		if t.IsScheduled() && t.ScheduledDate.Equal(d) {
			return true
		}
	}
	return false
}
