package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/priplot/priplot/internal/task"
)

// RankCompact renders ranked tasks in one-line-per-record compact format.
func RankCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for i, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(i+1, t))
	}
}

// formatTaskLine builds the one-line representation of a ranked task.
func formatTaskLine(rank int, t *task.Task) string {
	line := "#" + strconv.Itoa(rank) +
		" [" + fmt.Sprintf("%.2f", t.Score()) + "] " + t.Name +
		" value:" + fmt.Sprintf("%.1f", t.Value) +
		" time:" + fmt.Sprintf("%.1fh", t.Hours)

	if t.IsScheduled() {
		line += " on:" + t.ScheduledDate.String()
		if t.StartTime != nil && t.EndTime != nil {
			line += " " + t.StartTime.String() + "-" + t.EndTime.String()
		}
	}
	return line
}
