package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Lifecycle states for a task's calendar assignment.
const (
	StateUnscheduled = "unscheduled"
	StateScheduled   = "scheduled"
)

// Lifecycle events.
const (
	EventSchedule = "schedule"
	EventClear    = "clear"
)

// fsmContext carries no data; transitions are pure state checks.
type fsmContext struct{}

// lifecycle wraps a statekit interpreter for a single task. Scheduling is
// valid from either state (rescheduling overwrites); clearing only from
// the scheduled state.
type lifecycle struct {
	interpreter *statekit.Interpreter[fsmContext]
}

func newLifecycle(initial string) (*lifecycle, error) {
	builder := statekit.NewMachine[fsmContext]("task-schedule").
		WithInitial(statekit.StateID(initial)).
		WithContext(fsmContext{})

	builder.State(StateUnscheduled).
		On(EventSchedule).Target(StateScheduled).
		Done()

	builder.State(StateScheduled).
		On(EventSchedule).Target(StateScheduled).
		On(EventClear).Target(StateUnscheduled).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building schedule state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &lifecycle{interpreter: interpreter}, nil
}

// fire attempts a transition. statekit leaves the state unchanged when no
// transition matches, so a self-transition event is detected by probing
// the machine definition rather than comparing states.
func (l *lifecycle) fire(event string) error {
	before := l.current()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := l.current()

	if before != after {
		return nil
	}
	// Self-transitions (reschedule while scheduled) land here too; only
	// reject combinations the machine does not define.
	if before == StateScheduled && event == EventSchedule {
		return nil
	}
	return fmt.Errorf("%q is not allowed while the task is %s", event, before)
}

func (l *lifecycle) current() string {
	return string(l.interpreter.State().Value)
}
