package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/task"
)

func newFixture(t *testing.T, names ...string) (*task.List, *Scheduler) {
	t.Helper()
	l := task.NewList()
	for _, n := range names {
		if err := l.Add(task.NewDefault(n)); err != nil {
			t.Fatalf("add %s: %v", n, err)
		}
	}
	return l, New(l)
}

func clockPtr(h, m int) *date.Clock {
	c := date.NewClock(h, m)
	return &c
}

func TestScheduleAndClear(t *testing.T) {
	l, s := newFixture(t, "A")
	d := date.New(2024, time.June, 1)

	if err := s.Schedule("A", d, clockPtr(9, 0), clockPtr(10, 0)); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	a, _ := l.Get("A")
	if !a.IsScheduled() || !a.ScheduledDate.Equal(d) {
		t.Error("task not scheduled on expected date")
	}
	if got := s.TasksOn(d); len(got) != 1 || got[0].Name != "A" {
		t.Errorf("TasksOn = %d tasks, want exactly [A]", len(got))
	}

	if err := s.Clear("A"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if a.IsScheduled() || a.StartTime != nil || a.EndTime != nil {
		t.Error("schedule fields remain after clear")
	}
	if s.HasTasksOn(d) {
		t.Error("date still marked as having tasks after clear")
	}
}

func TestClearUnscheduledRejected(t *testing.T) {
	_, s := newFixture(t, "A")
	err := s.Clear("A")
	var cerr *clierr.Error
	if !errors.As(err, &cerr) || cerr.Code != clierr.InvalidSchedule {
		t.Errorf("got %v, want INVALID_SCHEDULE", err)
	}
}

func TestRescheduleOverwrites(t *testing.T) {
	l, s := newFixture(t, "A")
	first := date.New(2024, time.June, 1)
	second := date.New(2024, time.June, 8)

	if err := s.Schedule("A", first, clockPtr(9, 0), clockPtr(10, 0)); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := s.Schedule("A", second, clockPtr(13, 0), clockPtr(14, 0)); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	a, _ := l.Get("A")
	if !a.ScheduledDate.Equal(second) {
		t.Errorf("scheduled date = %s, want %s", a.ScheduledDate, second)
	}
	if s.HasTasksOn(first) {
		t.Error("old date still has the task after rescheduling")
	}
}

func TestScheduleBadTimeOrdering(t *testing.T) {
	l, s := newFixture(t, "A")
	d := date.New(2024, time.June, 1)

	err := s.Schedule("A", d, clockPtr(10, 0), clockPtr(9, 0))
	var cerr *clierr.Error
	if !errors.As(err, &cerr) || cerr.Code != clierr.InvalidSchedule {
		t.Fatalf("got %v, want INVALID_SCHEDULE", err)
	}
	// No partial update.
	a, _ := l.Get("A")
	if a.IsScheduled() {
		t.Error("task was scheduled despite invalid times")
	}
}

func TestScheduleEqualTimesRejected(t *testing.T) {
	_, s := newFixture(t, "A")
	d := date.New(2024, time.June, 1)
	if err := s.Schedule("A", d, clockPtr(9, 0), clockPtr(9, 0)); err == nil {
		t.Error("equal start/end accepted")
	}
}

func TestScheduleUnknownTask(t *testing.T) {
	_, s := newFixture(t)
	err := s.Schedule("ghost", date.Today(), nil, nil)
	var cerr *clierr.Error
	if !errors.As(err, &cerr) || cerr.Code != clierr.TaskNotFound {
		t.Errorf("got %v, want TASK_NOT_FOUND", err)
	}
}

func TestScheduleNew(t *testing.T) {
	l, s := newFixture(t)
	d := date.New(2024, time.June, 1)

	created, err := s.ScheduleNew("review budget", 4, 1.5, d, clockPtr(9, 0), clockPtr(10, 30))
	if err != nil {
		t.Fatalf("schedule new: %v", err)
	}
	if !created.IsScheduled() {
		t.Error("created task not scheduled")
	}
	if l.Len() != 1 {
		t.Errorf("list len = %d, want 1", l.Len())
	}
}

func TestScheduleNewValidationLeavesListUntouched(t *testing.T) {
	l, s := newFixture(t)
	d := date.New(2024, time.June, 1)

	if _, err := s.ScheduleNew("bad", 3, 0, d, nil, nil); err == nil {
		t.Fatal("time=0 accepted")
	}
	if _, err := s.ScheduleNew("bad", 9, 2, d, nil, nil); err == nil {
		t.Fatal("value=9 accepted")
	}
	if _, err := s.ScheduleNew("bad", 3, 2, d, clockPtr(10, 0), clockPtr(9, 0)); err == nil {
		t.Fatal("reversed times accepted")
	}
	if l.Len() != 0 {
		t.Errorf("list len = %d after failed creations, want 0", l.Len())
	}
}

func TestDefaultTimesEmptyDay(t *testing.T) {
	_, s := newFixture(t)
	start, end := s.DefaultTimes(date.New(2024, time.June, 1))
	if start.String() != "09:00" || end.String() != "10:00" {
		t.Errorf("default times = %s-%s, want 09:00-10:00", start, end)
	}
}

func TestDefaultTimesChainAfterLatestEnd(t *testing.T) {
	_, s := newFixture(t, "A", "B")
	d := date.New(2024, time.June, 1)
	if err := s.Schedule("A", d, clockPtr(9, 0), clockPtr(10, 0)); err != nil {
		t.Fatalf("schedule A: %v", err)
	}
	if err := s.Schedule("B", d, clockPtr(11, 0), clockPtr(12, 30)); err != nil {
		t.Fatalf("schedule B: %v", err)
	}

	start, end := s.DefaultTimes(d)
	if start.String() != "13:00" || end.String() != "14:00" {
		t.Errorf("default times = %s-%s, want 13:00-14:00", start, end)
	}
}
