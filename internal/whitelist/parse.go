package whitelist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// MalformedEntryError reports a rule line that survived comment stripping
// but does not parse: too few tokens, an unknown keyword, or a known
// keyword with a token count it does not support.
type MalformedEntryError struct {
	// Entry is the offending rule text, comment-stripped and trimmed
	Entry string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("invalid whitelist entry: %q", e.Entry)
}

// AddEntry parses one rule entry and inserts it into the matching table.
// The entry must already be comment-stripped and non-blank; a line that
// does not match any rule form returns a MalformedEntryError.
func (w *Whitelist) AddEntry(entry string) error {
	tokens := strings.Fields(entry)
	if len(tokens) < 2 {
		return &MalformedEntryError{Entry: entry}
	}
	switch strings.ToLower(tokens[0]) {
	case "field":
		switch len(tokens) {
		case 2:
			w.fields[tokens[1]] = struct{}{}
		case 3:
			set, ok := w.fieldTypes[tokens[1]]
			if !ok {
				set = make(map[string]struct{})
				w.fieldTypes[tokens[1]] = set
			}
			set[tokens[2]] = struct{}{}
		default:
			return &MalformedEntryError{Entry: entry}
		}
	case "type":
		if len(tokens) != 2 {
			return &MalformedEntryError{Entry: entry}
		}
		w.types[tokens[1]] = struct{}{}
	case "namespace":
		if len(tokens) != 2 {
			return &MalformedEntryError{Entry: entry}
		}
		w.namespaces[tokens[1]] = struct{}{}
	case "outer":
		if len(tokens) != 2 {
			return &MalformedEntryError{Entry: entry}
		}
		w.outers[tokens[1]] = struct{}{}
	default:
		return &MalformedEntryError{Entry: entry}
	}
	return nil
}

// AddFile loads every rule entry from a file. Lines are comment-stripped
// on the first "#" and trimmed; blank results are skipped. The first
// malformed entry or I/O failure aborts the load, so no partial file is
// silently accepted. Malformed entries keep their MalformedEntryError
// identity under errors.As and gain file:line context.
func (w *Whitelist) AddFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open whitelist file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := w.AddEntry(line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read whitelist file %s: %w", path, err)
	}
	return nil
}

// Load builds a whitelist from rule files read in the given order. The
// tables are pure unions, so order never changes query results; it only
// fixes which file an error is reported against. Any failure aborts the
// whole load.
func Load(paths ...string) (*Whitelist, error) {
	w := New()
	for _, path := range paths {
		if err := w.AddFile(path); err != nil {
			return nil, err
		}
	}
	return w, nil
}
