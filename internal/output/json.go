package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/priplot/priplot/internal/task"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// RankedTask is the JSON shape for one ranked task.
type RankedTask struct {
	Rank          int     `json:"rank"`
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Time          float64 `json:"time"`
	PriorityScore float64 `json:"priority_score"`
	ScheduledDate string  `json:"scheduled_date,omitempty"`
	StartTime     string  `json:"start_time,omitempty"`
	EndTime       string  `json:"end_time,omitempty"`
}

// Ranked converts tasks (already in rank order) into their JSON shape.
func Ranked(tasks []*task.Task) []RankedTask {
	out := make([]RankedTask, len(tasks))
	for i, t := range tasks {
		rt := RankedTask{
			Rank:          i + 1,
			Name:          t.Name,
			Value:         t.Value,
			Time:          t.Hours,
			PriorityScore: t.Score(),
		}
		if t.ScheduledDate != nil {
			rt.ScheduledDate = t.ScheduledDate.String()
		}
		if t.StartTime != nil {
			rt.StartTime = t.StartTime.String()
		}
		if t.EndTime != nil {
			rt.EndTime = t.EndTime.String()
		}
		out[i] = rt
	}
	return out
}
