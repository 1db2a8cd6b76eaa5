package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/date"
	"github.com/priplot/priplot/internal/task"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "work"+Extension)

	list := task.NewList()
	if err := list.Add(task.New("write report", 5, 1)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	scheduled := task.New("review budget", 3, 2)
	d, _ := date.Parse("2024-06-01")
	start, _ := date.ParseClock("09:00")
	end, _ := date.ParseClock("10:30")
	scheduled.Schedule(d, &start, &end)
	if err := list.Add(scheduled); err != nil {
		t.Fatalf("Add: %v", err)
	}

	store := New(path)
	if err := store.Save(list); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.Modified() {
		t.Error("store marked modified after Save")
	}

	loaded, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded %d tasks, want 2", loaded.Len())
	}
	got, ok := loaded.Get("review budget")
	if !ok {
		t.Fatal("scheduled task missing after round trip")
	}
	if !got.IsScheduled() || got.ScheduledDate.String() != "2024-06-01" {
		t.Errorf("scheduled date = %v, want 2024-06-01", got.ScheduledDate)
	}
	if got.StartTime.String() != "09:00" || got.EndTime.String() != "10:30" {
		t.Errorf("times = %v-%v, want 09:00-10:30", got.StartTime, got.EndTime)
	}
}

func TestSavePreservesCreatedAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s"+Extension)
	store := New(path)

	list := task.NewList()
	if err := store.Save(list); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	first := readEnvelope(t, path)

	if err := store.Save(list); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second := readEnvelope(t, path)

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed across saves: %v vs %v", first.CreatedAt, second.CreatedAt)
	}
	if second.Version != FormatVersion {
		t.Errorf("version = %d, want %d", second.Version, FormatVersion)
	}
}

func TestLoadAppliesPlaceholderDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s"+Extension)
	raw := `{"version":1,"tasks":[{"name":"bare"},{"name":"huge","value":9,"time":20}]}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	list, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bare, _ := list.Get("bare")
	if bare.Value != task.DefaultValue || bare.Hours != task.DefaultHours {
		t.Errorf("bare task = (%v, %v), want placeholder defaults (%v, %v)",
			bare.Value, bare.Hours, task.DefaultValue, task.DefaultHours)
	}
	huge, _ := list.Get("huge")
	if huge.Value != task.MaxValue || huge.Hours != task.MaxHours {
		t.Errorf("out-of-range task = (%v, %v), want clamped (%v, %v)",
			huge.Value, huge.Hours, task.MaxValue, task.MaxHours)
	}
}

func TestLoadSkipsDuplicatesAndEmptyNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s"+Extension)
	raw := `{"version":1,"tasks":[{"name":"a","value":2,"time":1},{"name":""},{"name":"a","value":4,"time":1}]}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	list, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if list.Len() != 1 {
		t.Fatalf("loaded %d tasks, want 1", list.Len())
	}
	a, _ := list.Get("a")
	if a.Value != 2 {
		t.Errorf("first occurrence should win, value = %v, want 2", a.Value)
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s"+Extension)
	raw := `{"version":99,"tasks":[]}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := New(path).Load()
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.SessionIO {
		t.Fatalf("Load error = %v, want SESSION_IO", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.priplot")).Load()
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.SessionIO {
		t.Fatalf("Load error = %v, want SESSION_IO", err)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "s"+Extension))
	if err := store.Save(task.NewList()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		name := e.Name()
		if name != "s"+Extension && name != "s"+Extension+".lock" {
			t.Errorf("unexpected leftover file %q", name)
		}
	}
}

func TestModifiedClearsOnSave(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "s"+Extension))
	if store.Modified() {
		t.Fatal("new store should not be modified")
	}
	store.MarkModified()
	if !store.Modified() {
		t.Fatal("MarkModified did not set the flag")
	}
	if err := store.Save(task.NewList()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.Modified() {
		t.Fatal("Save did not clear the modified flag")
	}
	if !store.SavedWithin(time.Minute) {
		t.Fatal("SavedWithin(1m) = false right after Save")
	}
}

func TestRecentAddDedupesAndCaps(t *testing.T) {
	r := &Recent{}
	for i := 0; i < 15; i++ {
		r.Add(filepath.Join("/tmp", "s", string(rune('a'+i))+Extension))
	}
	if len(r.Paths) != maxRecent {
		t.Fatalf("len = %d, want %d", len(r.Paths), maxRecent)
	}

	front := r.Paths[3]
	r.Add(front)
	if r.Paths[0] != front {
		t.Errorf("re-added path not moved to front: %v", r.Paths[0])
	}
	if len(r.Paths) != maxRecent {
		t.Errorf("duplicate add grew list to %d", len(r.Paths))
	}
}

func TestRecentRoundTripPrunesMissing(t *testing.T) {
	dir := t.TempDir()

	exists := filepath.Join(dir, "kept"+Extension)
	if err := os.WriteFile(exists, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	gone := filepath.Join(dir, "gone"+Extension)

	r := &Recent{path: filepath.Join(dir, recentFileName)}
	r.Add(gone)
	r.Add(exists)
	if err := r.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadRecent(dir)
	if err != nil {
		t.Fatalf("LoadRecent: %v", err)
	}
	if len(loaded.Paths) != 1 || loaded.Paths[0] != exists {
		t.Errorf("Paths = %v, want only %q", loaded.Paths, exists)
	}
}

func TestLoadRecentMissingFile(t *testing.T) {
	r, err := LoadRecent(t.TempDir())
	if err != nil {
		t.Fatalf("LoadRecent: %v", err)
	}
	if len(r.Paths) != 0 {
		t.Errorf("Paths = %v, want empty", r.Paths)
	}
}

func readEnvelope(t *testing.T, path string) envelope {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatal(err)
	}
	return env
}
