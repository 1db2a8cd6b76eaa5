// Package session persists the task list to .priplot session files and
// tracks recently opened sessions.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/filelock"
	"github.com/priplot/priplot/internal/task"
)

const (
	// FormatVersion is the current session file schema version.
	FormatVersion = 1

	// Extension is the canonical session file suffix.
	Extension = ".priplot"

	fileMode = 0o600
)

// envelope is the on-disk session file layout.
type envelope struct {
	Version    int          `json:"version"`
	CreatedAt  time.Time    `json:"created_at"`
	ModifiedAt time.Time    `json:"modified_at"`
	Tasks      []*task.Task `json:"tasks"`
}

// Store manages a single session file: loading it into a task list,
// saving atomically, and tracking unsaved changes.
type Store struct {
	path     string
	created  time.Time
	modified bool
	lastSave time.Time
}

// New creates a store bound to the given session file path. The file
// need not exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// SetPath rebinds the store to a different session file, e.g. after
// "save as". The creation timestamp resets so the new file gets its own.
func (s *Store) SetPath(path string) {
	s.path = path
	s.created = time.Time{}
}

// Modified reports whether the task list has changes not yet saved.
func (s *Store) Modified() bool {
	return s.modified
}

// MarkModified records that the in-memory task list diverged from disk.
func (s *Store) MarkModified() {
	s.modified = true
}

// Load reads the session file into a fresh task list. Tasks with zero
// value or hours get placeholder defaults; out-of-range values clamp to
// the axis bounds rather than failing the load.
func (s *Store) Load() (*task.List, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot read session file: %v", err)).
			WithDetails(map[string]any{"path": s.path})
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, clierr.New(clierr.SessionIO,
			fmt.Sprintf("session file is not valid JSON: %v", err)).
			WithDetails(map[string]any{"path": s.path})
	}
	if env.Version > FormatVersion {
		return nil, clierr.New(clierr.SessionIO,
			fmt.Sprintf("session file version %d is newer than supported version %d", env.Version, FormatVersion)).
			WithDetails(map[string]any{"path": s.path})
	}

	list := task.NewList()
	for _, t := range env.Tasks {
		if t == nil || t.Name == "" {
			continue
		}
		if t.Value == 0 {
			t.Value = task.DefaultValue
		}
		if t.Hours == 0 {
			t.Hours = task.DefaultHours
		}
		t.Value = task.ClampValue(t.Value)
		t.Hours = task.ClampHours(t.Hours)
		if err := list.Add(t); err != nil {
			var ce *clierr.Error
			if errors.As(err, &ce) && ce.Code == clierr.DuplicateTask {
				continue
			}
			return nil, clierr.New(clierr.SessionIO,
				fmt.Sprintf("session file contains an invalid task: %v", err)).
				WithDetails(map[string]any{"path": s.path, "task": t.Name})
		}
	}

	s.created = env.CreatedAt
	s.modified = false
	return list, nil
}

// Save writes the task list to the session file. The write goes to a
// temporary file in the same directory followed by a rename, so a crash
// mid-write never corrupts the existing session. An advisory lock
// serializes concurrent saves to the same path.
func (s *Store) Save(list *task.List) error {
	created := s.created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	env := envelope{
		Version:    FormatVersion,
		CreatedAt:  created,
		ModifiedAt: time.Now().UTC(),
		Tasks:      list.Tasks(),
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot encode session: %v", err))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot create session directory: %v", err)).
			WithDetails(map[string]any{"path": dir})
	}

	lock, err := filelock.Acquire(s.path + ".lock")
	if err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot lock session file: %v", err)).
			WithDetails(map[string]any{"path": s.path})
	}
	defer func() { _ = lock.Release() }()

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot create temporary session file: %v", err)).
			WithDetails(map[string]any{"path": dir})
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot write session file: %v", err)).
			WithDetails(map[string]any{"path": tmpName})
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot finalize session file: %v", err)).
			WithDetails(map[string]any{"path": tmpName})
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot set session file permissions: %v", err)).
			WithDetails(map[string]any{"path": tmpName})
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot replace session file: %v", err)).
			WithDetails(map[string]any{"path": s.path})
	}

	s.created = created
	s.modified = false
	s.lastSave = time.Now()
	return nil
}

// SavedWithin reports whether this store wrote the file within the last
// d. Callers watching the file use it to ignore their own saves.
func (s *Store) SavedWithin(d time.Duration) bool {
	return !s.lastSave.IsZero() && time.Since(s.lastSave) < d
}
