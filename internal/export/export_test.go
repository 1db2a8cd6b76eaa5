package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/task"
)

func TestWriteRankedSheet(t *testing.T) {
	list := task.NewList()
	mustAdd(t, list, task.New("low", 1, 5))
	mustAdd(t, list, task.New("high", 5, 1))

	scheduled := task.New("mid", 3, 2)
	d, _ := date.Parse("2024-06-01")
	start, _ := date.ParseClock("09:00")
	end, _ := date.ParseClock("10:00")
	scheduled.Schedule(d, &start, &end)
	mustAdd(t, list, scheduled)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := Write(list, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3 tasks", len(rows))
	}

	for i, h := range headers {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	// Rows follow priority score descending: high (5.0), mid (1.5), low (0.2).
	names := []string{rows[1][1], rows[2][1], rows[3][1]}
	want := []string{"high", "mid", "low"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("row %d task = %q, want %q", i+1, names[i], want[i])
		}
	}
	if rows[1][0] != "1" || rows[3][0] != "3" {
		t.Errorf("rank column = %q..%q, want 1..3", rows[1][0], rows[3][0])
	}

	if rows[2][5] != "2024-06-01" || rows[2][6] != "09:00" || rows[2][7] != "10:00" {
		t.Errorf("schedule columns = %v, want 2024-06-01 09:00 10:00", rows[2][5:8])
	}
	if len(rows[1]) > 5 && strings.TrimSpace(strings.Join(rows[1][5:], "")) != "" {
		t.Errorf("unscheduled task has schedule cells: %v", rows[1][5:])
	}
}

func TestWriteEmptyList(t *testing.T) {
	err := Write(task.NewList(), filepath.Join(t.TempDir(), "out.xlsx"))
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.NoTasks {
		t.Fatalf("Write error = %v, want NO_TASKS", err)
	}
}

func TestWriteBadDirectory(t *testing.T) {
	list := task.NewList()
	mustAdd(t, list, task.New("a", 3, 2))

	err := Write(list, filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.ExportIO {
		t.Fatalf("Write error = %v, want EXPORT_IO", err)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	list := task.NewList()
	mustAdd(t, list, task.New("a", 3, 2))

	if err := Write(list, filepath.Join(dir, "out.xlsx")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.xlsx" {
		t.Errorf("directory contents = %v, want only out.xlsx", entries)
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}

	list := task.NewList()
	mustAdd(t, list, task.New("a", 3, 2))
	if err := Write(list, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := excelize.OpenFile(path); err != nil {
		t.Errorf("overwritten file is not a valid spreadsheet: %v", err)
	}
}

func TestDefaultPathEndsWithXlsx(t *testing.T) {
	p := DefaultPath()
	if filepath.Ext(p) != ".xlsx" {
		t.Errorf("DefaultPath = %q, want .xlsx extension", p)
	}
}

func mustAdd(t *testing.T, list *task.List, tk *task.Task) {
	t.Helper()
	if err := list.Add(tk); err != nil {
		t.Fatal(err)
	}
}
