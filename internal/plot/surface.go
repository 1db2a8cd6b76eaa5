// Package plot models the interactive value/time scatter surface. It
// maps tasks onto a terminal cell grid, resolves pointer hits, and runs
// the drag lifecycle that writes position changes back to the task list.
package plot

import (
	"math"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/task"
)

// hoverThreshold is the maximum cell distance for hover/hit resolution.
const hoverThreshold = 2.0

// Point is a transient view of one task's plot position. The task is
// authoritative; points are recomputed from it on every render.
type Point struct {
	Task *task.Task
	X    int
	Y    int
}

// Surface owns the grid mapping and drag state. Width and height are
// the inner plotting area in cells, excluding axes and borders.
type Surface struct {
	tasks  *task.List
	width  int
	height int

	drag *dragState
}

type dragState struct {
	name        string
	originValue float64
	originHours float64
}

// NewSurface creates a plot surface over the task list.
func NewSurface(tasks *task.List) *Surface {
	return &Surface{tasks: tasks, width: 1, height: 1}
}

// Resize sets the plotting area in cells. Minimum 1x1.
func (s *Surface) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.width = width
	s.height = height
}

// Width returns the plotting area width in cells.
func (s *Surface) Width() int { return s.width }

// Height returns the plotting area height in cells.
func (s *Surface) Height() int { return s.height }

// CellFor maps a task's (value, hours) to a grid cell. Value grows
// rightward; hours grow upward, so rows are inverted for the terminal.
func (s *Surface) CellFor(t *task.Task) (int, int) {
	x := scale(t.Value, task.MinValue, task.MaxValue, s.width)
	y := s.height - 1 - scale(t.Hours, task.MinHours, task.MaxHours, s.height)
	return x, y
}

// CoordsAt maps a grid cell back to (value, hours), the inverse of
// CellFor up to cell quantization.
func (s *Surface) CoordsAt(x, y int) (float64, float64) {
	value := unscale(x, task.MinValue, task.MaxValue, s.width)
	hours := unscale(s.height-1-y, task.MinHours, task.MaxHours, s.height)
	return value, hours
}

// Points returns the current plot points in insertion order.
func (s *Surface) Points() []Point {
	tasks := s.tasks.Tasks()
	out := make([]Point, len(tasks))
	for i, t := range tasks {
		x, y := s.CellFor(t)
		out[i] = Point{Task: t, X: x, Y: y}
	}
	return out
}

// Hit resolves the nearest point within the hover threshold of the
// given cell, or nil when nothing is close enough. Ties go to the
// earliest-inserted task.
func (s *Surface) Hit(x, y int) *task.Task {
	var best *task.Task
	bestDist := math.Inf(1)
	for _, p := range s.Points() {
		dx := float64(p.X - x)
		dy := float64(p.Y - y)
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist <= hoverThreshold && dist < bestDist {
			best = p.Task
			bestDist = dist
		}
	}
	return best
}

// BeginDrag starts dragging the named task, capturing its origin so a
// canceled drag can restore it.
func (s *Surface) BeginDrag(name string) error {
	t, ok := s.tasks.Get(name)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "no task named %q", name)
	}
	s.drag = &dragState{name: name, originValue: t.Value, originHours: t.Hours}
	return nil
}

// Dragging returns the name of the task being dragged, if any.
func (s *Surface) Dragging() (string, bool) {
	if s.drag == nil {
		return "", false
	}
	return s.drag.name, true
}

// MoveDrag moves the dragged task to the given coordinates, clamped to
// the axis bounds, and writes through to the task list immediately so
// priority feedback is live rather than deferred to release.
func (s *Surface) MoveDrag(value, hours float64) error {
	if s.drag == nil {
		return clierr.New(clierr.InternalError, "no drag in progress")
	}
	return s.tasks.SetPriority(s.drag.name, task.ClampValue(value), task.ClampHours(hours))
}

// MoveDragToCell moves the dragged task to the cell under the pointer.
func (s *Surface) MoveDragToCell(x, y int) error {
	value, hours := s.CoordsAt(x, y)
	return s.MoveDrag(value, hours)
}

// NudgeDrag moves the dragged task by whole grid steps, the keyboard
// equivalent of a pointer drag.
func (s *Surface) NudgeDrag(dx, dy int) error {
	if s.drag == nil {
		return clierr.New(clierr.InternalError, "no drag in progress")
	}
	t, ok := s.tasks.Get(s.drag.name)
	if !ok {
		return clierr.Newf(clierr.TaskNotFound, "no task named %q", s.drag.name)
	}
	x, y := s.CellFor(t)
	return s.MoveDragToCell(x+dx, y+dy)
}

// EndDrag finalizes the drag. No-op when no drag is in progress.
func (s *Surface) EndDrag() {
	s.drag = nil
}

// CancelDrag restores the task to its pre-drag position and ends the
// drag. No-op when no drag is in progress.
func (s *Surface) CancelDrag() {
	if s.drag == nil {
		return
	}
	_ = s.tasks.SetPriority(s.drag.name, s.drag.originValue, s.drag.originHours)
	s.drag = nil
}

// scale maps v from [lo, hi] onto [0, cells-1].
func scale(v, lo, hi float64, cells int) int {
	if cells <= 1 || hi <= lo {
		return 0
	}
	frac := (v - lo) / (hi - lo)
	idx := int(math.Round(frac * float64(cells-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= cells {
		idx = cells - 1
	}
	return idx
}

// unscale maps a cell index from [0, cells-1] back onto [lo, hi].
func unscale(idx int, lo, hi float64, cells int) float64 {
	if cells <= 1 {
		return lo
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= cells {
		idx = cells - 1
	}
	return lo + float64(idx)/float64(cells-1)*(hi-lo)
}
