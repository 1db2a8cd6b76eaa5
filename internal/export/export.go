// Package export writes the ranked task list to an xlsx spreadsheet.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/task"
)

const sheetName = "Priorities"

// headers defines the column order of the sheet.
var headers = []string{
	"Rank", "Task", "Value", "Time (h)", "Priority Score",
	"Scheduled Date", "Start Time", "End Time",
}

// Write exports the task list to path, ranked by priority score
// descending. The file is written to a temporary sibling and renamed
// into place, so a failed export never leaves a truncated spreadsheet.
func Write(list *task.List, path string) error {
	if list.Len() == 0 {
		return clierr.New(clierr.NoTasks, "no tasks to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return exportErr(path, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return exportErr(path, err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return exportErr(path, err)
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", endHeader, headerStyle); err != nil {
		return exportErr(path, err)
	}

	for i, t := range list.Ranked() {
		row := i + 2
		values := []any{
			i + 1,
			t.Name,
			t.Value,
			t.Hours,
			round2(t.Score()),
			formatDate(t),
			formatClock(t.StartTime),
			formatClock(t.EndTime),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return exportErr(path, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "B", "B", 32); err != nil {
		return exportErr(path, err)
	}
	if err := f.SetColWidth(sheetName, "C", "H", 14); err != nil {
		return exportErr(path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*.xlsx")
	if err != nil {
		return exportErr(path, err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()

	if err := f.SaveAs(tmpName); err != nil {
		_ = os.Remove(tmpName)
		return exportErr(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return exportErr(path, err)
	}
	return nil
}

// DefaultPath picks a destination for an export without an explicit
// path: the Downloads folder if writable, else the home directory,
// else the working directory. The filename carries today's date.
func DefaultPath() string {
	name := fmt.Sprintf("priplot_%s.xlsx", time.Now().Format("2006-01-02"))
	if home, err := os.UserHomeDir(); err == nil {
		downloads := filepath.Join(home, "Downloads")
		if writable(downloads) {
			return filepath.Join(downloads, name)
		}
		if writable(home) {
			return filepath.Join(home, name)
		}
	}
	return name
}

func writable(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	probe, err := os.CreateTemp(dir, ".priplot-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}

func formatDate(t *task.Task) string {
	if t.ScheduledDate == nil {
		return ""
	}
	return t.ScheduledDate.String()
}

func formatClock(c *date.Clock) string {
	if c == nil {
		return ""
	}
	return c.String()
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func exportErr(path string, err error) error {
	return clierr.New(clierr.ExportIO,
		fmt.Sprintf("cannot write spreadsheet: %v", err)).
		WithDetails(map[string]any{"path": path})
}
