// Package schedule assigns tasks to calendar dates and enforces the
// unscheduled/scheduled lifecycle.
package schedule

import (
	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/task"
)

// Default dialog times: the first slot of a day starts at 09:00 and
// runs one hour; later slots chain 30 minutes after the latest end.
var defaultStart = date.NewClock(9, 0)

const (
	slotGapMinutes      = 30
	slotDurationMinutes = 60
)

// Scheduler performs calendar transitions on the task list. All methods
// either fully apply or leave state untouched.
type Scheduler struct {
	tasks    *task.List
	dayStart date.Clock
}

// New creates a Scheduler over the given task list.
func New(tasks *task.List) *Scheduler {
	return &Scheduler{tasks: tasks, dayStart: defaultStart}
}

// SetDayStart overrides the first proposed slot of a day.
func (s *Scheduler) SetDayStart(c date.Clock) {
	if !c.IsZero() {
		s.dayStart = c
	}
}

// Schedule assigns an existing task to a date with an optional time
// range. Rescheduling a scheduled task overwrites its entry.
func (s *Scheduler) Schedule(name string, d date.Date, start, end *date.Clock) error {
	t, ok := s.tasks.Get(name)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "no task named %q", name)
	}
	if err := validateTimes(start, end); err != nil {
		return err
	}

	fsm, err := newLifecycle(stateOf(t))
	if err != nil {
		return clierr.New(clierr.InternalError, err.Error())
	}
	if err := fsm.fire(EventSchedule); err != nil {
		return clierr.New(clierr.InvalidSchedule, err.Error())
	}

	t.Schedule(d, start, end)
	return nil
}

// ScheduleNew validates and creates a task that is born scheduled, the
// calendar "Add Task" path. Nothing is added unless every field passes.
func (s *Scheduler) ScheduleNew(name string, value, hours float64, d date.Date, start, end *date.Clock) (*task.Task, error) {
	t := task.New(name, value, hours)
	if err := task.Validate(t); err != nil {
		return nil, err
	}
	if err := validateTimes(start, end); err != nil {
		return nil, err
	}
	if err := s.tasks.Add(t); err != nil {
		return nil, err
	}
	t.Schedule(d, start, end)
	return t, nil
}

// Clear transitions a task back to unscheduled, removing its date and
// time fields. Clearing an unscheduled task is an invalid transition.
func (s *Scheduler) Clear(name string) error {
	t, ok := s.tasks.Get(name)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "no task named %q", name)
	}

	fsm, err := newLifecycle(stateOf(t))
	if err != nil {
		return clierr.New(clierr.InternalError, err.Error())
	}
	if err := fsm.fire(EventClear); err != nil {
		return clierr.New(clierr.InvalidSchedule, err.Error())
	}

	t.ClearSchedule()
	return nil
}

// TasksOn returns the tasks scheduled on d, start time ascending.
func (s *Scheduler) TasksOn(d date.Date) []*task.Task {
	return s.tasks.On(d)
}

// HasTasksOn reports whether d has at least one scheduled task.
func (s *Scheduler) HasTasksOn(d date.Date) bool {
	return s.tasks.HasTasksOn(d)
}

// DefaultTimes proposes a start/end pair for a new entry on d. The first
// entry of a day gets 09:00–10:00; later entries start 30 minutes after
// the latest scheduled end that day.
func (s *Scheduler) DefaultTimes(d date.Date) (date.Clock, date.Clock) {
	latest := s.dayStart
	found := false
	for _, t := range s.tasks.On(d) {
		if t.EndTime == nil {
			continue
		}
		if !found || latest.Before(*t.EndTime) {
			latest = *t.EndTime
			found = true
		}
	}

	start := s.dayStart
	if found {
		start = latest.AddMinutes(slotGapMinutes)
	}
	return start, start.AddMinutes(slotDurationMinutes)
}

func stateOf(t *task.Task) string {
	if t.IsScheduled() {
		return StateScheduled
	}
	return StateUnscheduled
}

func validateTimes(start, end *date.Clock) error {
	if start == nil || end == nil {
		return nil
	}
	if !start.Before(*end) {
		return clierr.Newf(clierr.InvalidSchedule, "start time %s must precede end time %s",
			start, end).
			WithDetails(map[string]any{
				"start": start.String(),
				"end":   end.String(),
			})
	}
	return nil
}
