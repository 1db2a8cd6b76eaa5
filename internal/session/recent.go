package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/priplot/priplot/internal/clierr"
)

// maxRecent caps the recent-session list.
const maxRecent = 10

const recentFileName = "recent.json"

// Recent tracks recently opened session files, most recent first.
// Entries whose files no longer exist are pruned on load.
type Recent struct {
	path  string
	Paths []string
}

// LoadRecent reads the recent-sessions list from dir. A missing file is
// not an error; it yields an empty list.
func LoadRecent(dir string) (*Recent, error) {
	r := &Recent{path: filepath.Join(dir, recentFileName)}

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot read recent sessions: %v", err)).
			WithDetails(map[string]any{"path": r.path})
	}
	if err := json.Unmarshal(data, &r.Paths); err != nil {
		// A corrupt recent list is not worth failing startup over.
		r.Paths = nil
		return r, nil
	}

	r.prune()
	return r, nil
}

// Add records path as the most recently opened session. Duplicates move
// to the front; the list is trimmed to the cap.
func (r *Recent) Add(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	out := make([]string, 0, len(r.Paths)+1)
	out = append(out, abs)
	for _, p := range r.Paths {
		if p != abs {
			out = append(out, p)
		}
	}
	if len(out) > maxRecent {
		out = out[:maxRecent]
	}
	r.Paths = out
}

// Save writes the recent-sessions list back to its directory.
func (r *Recent) Save() error {
	data, err := json.MarshalIndent(r.Paths, "", "  ")
	if err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot encode recent sessions: %v", err))
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot create config directory: %v", err)).
			WithDetails(map[string]any{"path": filepath.Dir(r.path)})
	}
	if err := os.WriteFile(r.path, data, fileMode); err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot write recent sessions: %v", err)).
			WithDetails(map[string]any{"path": r.path})
	}
	return nil
}

func (r *Recent) prune() {
	kept := r.Paths[:0]
	for _, p := range r.Paths {
		if _, err := os.Stat(p); err == nil {
			kept = append(kept, p)
		}
	}
	r.Paths = kept
	if len(r.Paths) > maxRecent {
		r.Paths = r.Paths[:maxRecent]
	}
}
