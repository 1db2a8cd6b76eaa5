// Package clipboard imports task names from the system clipboard. It
// accepts plain one-name-per-line text and indented mind-map outlines,
// where nested entries become "Parent->Child" names.
package clipboard

import (
	"strings"

	atotto "github.com/atotto/clipboard"

	"github.com/priplot/priplot/internal/clierr"
)

// pathSeparator joins outline ancestors into a single task name.
const pathSeparator = "->"

// Read returns the clipboard contents, or a CLIPBOARD_EMPTY error when
// the clipboard holds nothing usable.
func Read() (string, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return "", clierr.Newf(clierr.ClipboardEmpty, "cannot read clipboard: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", clierr.New(clierr.ClipboardEmpty, "clipboard is empty")
	}
	return text, nil
}

// ReadTasks reads the clipboard and parses it into task names,
// detecting the format from the text itself.
func ReadTasks() ([]string, error) {
	text, err := Read()
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// Parse extracts task names from clipboard text. Indented text is
// treated as a mind-map outline; flat text as one name per line.
func Parse(text string) ([]string, error) {
	if isOutline(text) {
		return ParseOutline(text)
	}
	return ParseLines(text)
}

// ParseLines splits flat text into one task name per non-empty line.
func ParseLines(text string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		name = strings.TrimSpace(strings.TrimPrefix(name, "*"))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, clierr.New(clierr.ClipboardEmpty, "clipboard contains no task names")
	}
	return names, nil
}

// ParseOutline turns an indented outline into task names. Only leaf
// entries become tasks; their ancestors join the name with "->", so
//
//	Project
//		Design
//		Build
//
// yields "Project->Design" and "Project->Build".
func ParseOutline(text string) ([]string, error) {
	type node struct {
		depth int
		name  string
	}

	var stack []node
	var names []string
	seen := make(map[string]bool)

	flushLeaf := func() {
		if len(stack) == 0 {
			return
		}
		parts := make([]string, len(stack))
		for i, n := range stack {
			parts[i] = n.name
		}
		name := strings.Join(parts, pathSeparator)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		depth := indentDepth(line)
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		name = strings.TrimSpace(strings.TrimPrefix(name, "*"))
		if name == "" {
			continue
		}

		// A line no deeper than the current top closes the branch,
		// so the top was a leaf.
		if len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			flushLeaf()
		}
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, node{depth: depth, name: name})
	}
	flushLeaf()

	if len(names) == 0 {
		return nil, clierr.New(clierr.ClipboardEmpty, "clipboard contains no task names")
	}
	return names, nil
}

// isOutline reports whether any non-blank line after the first is
// indented, which marks the text as a mind-map export.
func isOutline(text string) bool {
	for i, line := range strings.Split(text, "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		if indentDepth(line) > 0 {
			return true
		}
	}
	return false
}

// indentDepth counts leading whitespace, a tab weighing as one level
// and four spaces as one level.
func indentDepth(line string) int {
	spaces, tabs := 0, 0
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
		case '\t':
			tabs++
		default:
			return tabs + spaces/4
		}
	}
	return tabs + spaces/4
}
