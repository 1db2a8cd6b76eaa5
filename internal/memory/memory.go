// Package memory remembers value and hours for previously entered task
// names, so a recurring task gets its last priority back instead of
// placeholder defaults. Recall is fuzzy: close-enough names match.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/priplot/priplot/internal/clierr"
)

// maxEntries caps the store; the least recently used entries are
// evicted beyond it.
const maxEntries = 1000

// containmentBonus rewards a match where one normalized name contains
// the other, e.g. "report" inside "write report".
const containmentBonus = 0.08

const fileName = "memory.json"

// Entry is one remembered task name with its last priority inputs.
type Entry struct {
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	Hours    float64   `json:"time"`
	LastUsed time.Time `json:"last_used"`
}

// Memory is the on-disk goal memory store.
type Memory struct {
	path    string
	entries map[string]Entry
}

// Load reads the memory store from dir. A missing or corrupt file
// yields an empty store; memory is a convenience, not critical state.
func Load(dir string) (*Memory, error) {
	m := &Memory{
		path:    filepath.Join(dir, fileName),
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot read goal memory: %v", err)).
			WithDetails(map[string]any{"path": m.path})
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return m, nil
	}
	for _, e := range entries {
		key := Normalize(e.Name)
		if key == "" {
			continue
		}
		m.entries[key] = e
	}
	return m, nil
}

// Remember stores the priority inputs for a task name, replacing any
// prior entry for the same normalized name.
func (m *Memory) Remember(name string, value, hours float64) {
	key := Normalize(name)
	if key == "" {
		return
	}
	m.entries[key] = Entry{
		Name:     name,
		Value:    value,
		Hours:    hours,
		LastUsed: time.Now().UTC(),
	}
	m.evict()
}

// Recall finds the best remembered entry for name. It returns the
// entry, its match score in [0, 1], and whether the score cleared the
// length-dependent threshold. An exact normalized match scores 1.0.
func (m *Memory) Recall(name string) (Entry, float64, bool) {
	key := Normalize(name)
	if key == "" {
		return Entry{}, 0, false
	}
	if e, ok := m.entries[key]; ok {
		return e, 1.0, true
	}

	var best Entry
	var bestKey string
	var bestScore float64
	for k, e := range m.entries {
		s := similarity(key, k)
		if s > bestScore {
			best, bestKey, bestScore = e, k, s
		}
	}
	return best, bestScore, bestScore >= threshold(key, bestKey)
}

// Len returns the number of remembered entries.
func (m *Memory) Len() int {
	return len(m.entries)
}

// Save writes the store back to disk atomically.
func (m *Memory) Save() error {
	entries := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastUsed.After(entries[j].LastUsed)
	})
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot encode goal memory: %v", err))
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot create config directory: %v", err)).
			WithDetails(map[string]any{"path": dir})
	}
	tmp, err := os.CreateTemp(dir, fileName+".tmp-*")
	if err != nil {
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot create temporary memory file: %v", err))
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot write goal memory: %v", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot finalize goal memory: %v", err))
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		_ = os.Remove(tmpName)
		return clierr.New(clierr.SessionIO,
			fmt.Sprintf("cannot replace goal memory: %v", err)).
			WithDetails(map[string]any{"path": m.path})
	}
	return nil
}

// Normalize lowercases, strips punctuation, and collapses whitespace so
// "Write  Report!" and "write report" share a key.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// similarity scores two normalized names in [0, 1] using edit distance,
// with a small bonus when one name contains the other.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0
	}
	s := 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		s += containmentBonus
	}
	if s > 1.0 {
		s = 1.0
	}
	if s < 0 {
		s = 0
	}
	return s
}

// threshold returns the minimum match score for a pair of normalized
// names, keyed off the longer of the two. Short names need a
// near-exact match; longer names tolerate more edit distance.
func threshold(a, b string) float64 {
	switch n := max(len([]rune(a)), len([]rune(b))); {
	case n <= 6:
		return 0.92
	case n <= 12:
		return 0.86
	default:
		return 0.80
	}
}

func (m *Memory) evict() {
	if len(m.entries) <= maxEntries {
		return
	}
	var oldestKey string
	var oldest time.Time
	first := true
	for k, e := range m.entries {
		if first || e.LastUsed.Before(oldest) {
			oldestKey, oldest = k, e.LastUsed
			first = false
		}
	}
	delete(m.entries, oldestKey)
}
